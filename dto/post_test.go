package dto

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"blog-server/models"
)

func TestTagInputUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		body string
		want TagInput
	}{
		{name: "absent", body: `{}`, want: TagInput{}},
		{name: "null", body: `{"tags":null}`, want: TagInput{}},
		{name: "empty string", body: `{"tags":""}`, want: TagInput{}},
		{name: "comma list", body: `{"tags":"a, b, ,a"}`, want: TagInput{Set: true, Values: []string{"a", "b", "a"}}},
		{name: "only separators", body: `{"tags":" , ,"}`, want: TagInput{Set: true, Values: []string{}}},
		{name: "array", body: `{"tags":[" go", "", "web "]}`, want: TagInput{Set: true, Values: []string{"go", "web"}}},
		{name: "array keeps order and case", body: `{"tags":["FooBar",""," x "]}`, want: TagInput{Set: true, Values: []string{"FooBar", "x"}}},
		{name: "empty array", body: `{"tags":[]}`, want: TagInput{Set: true, Values: []string{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p PostPayload
			require.NoError(t, json.Unmarshal([]byte(tt.body), &p))
			if diff := cmp.Diff(tt.want, p.Tags); diff != "" {
				t.Errorf("tags mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTagInputRejectsOtherTypes(t *testing.T) {
	var p PostPayload
	assert.Error(t, json.Unmarshal([]byte(`{"tags":42}`), &p))
	assert.Error(t, json.Unmarshal([]byte(`{"tags":[1,2]}`), &p))
}

func TestTagInputMarshal(t *testing.T) {
	b, err := json.Marshal(TagInput{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))

	b, err = json.Marshal(Tags("a", "b"))
	require.NoError(t, err)
	assert.Equal(t, `["a","b"]`, string(b))

	b, err = json.Marshal(TagInput{Set: true})
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(b))
}

func TestNewPostDTO(t *testing.T) {
	id := primitive.NewObjectID()
	d := NewPostDTO(models.Post{ID: id, Title: "t", Status: "draft"})

	assert.Equal(t, id.Hex(), d.ID)
	assert.NotNil(t, d.Tags)

	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"_id":"`+id.Hex()+`"`)
	assert.Contains(t, string(b), `"viewCount":0`)
	assert.Contains(t, string(b), `"tags":[]`)

	assert.NotNil(t, NewPostDTOs(nil))
}

func TestNewPagination(t *testing.T) {
	tests := []struct {
		page, limit int
		total       int64
		pages       int
	}{
		{1, 10, 0, 0},
		{1, 10, 1, 1},
		{1, 10, 10, 1},
		{2, 10, 11, 2},
		{1, 3, 23, 8},
	}
	for _, tt := range tests {
		got := NewPagination(tt.page, tt.limit, tt.total)
		assert.Equal(t, Pagination{Current: tt.page, Pages: tt.pages, Total: tt.total, Limit: tt.limit}, got)
	}
}
