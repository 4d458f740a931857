package dto

// Every response carries success. Failures add message and, for field level
// validation problems, errors.

// ErrorResponseDTO is the failure envelope. Error holds the underlying cause
// for unexpected failures and is not a stable API.
type ErrorResponseDTO struct {
	Success bool     `json:"success" example:"false"`
	Message string   `json:"message" example:"Post not found"`
	Errors  []string `json:"errors,omitempty"`
	Error   string   `json:"error,omitempty"`
}

// MessageResponseDTO is a success envelope without data.
type MessageResponseDTO struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message" example:"Post deleted successfully"`
}

type PostListResponseDTO struct {
	Success    bool       `json:"success" example:"true"`
	Data       []PostDTO  `json:"data"`
	Pagination Pagination `json:"pagination"`
}

type PostResponseDTO struct {
	Success bool    `json:"success" example:"true"`
	Message string  `json:"message,omitempty" example:"Post created successfully"`
	Data    PostDTO `json:"data"`
}

type CategoryListResponseDTO struct {
	Success bool          `json:"success" example:"true"`
	Data    []CategoryDTO `json:"data"`
}

type CategoryResponseDTO struct {
	Success bool        `json:"success" example:"true"`
	Message string      `json:"message,omitempty" example:"Category created successfully"`
	Data    CategoryDTO `json:"data"`
}

// StringListResponseDTO carries the distinct published post categories.
type StringListResponseDTO struct {
	Success bool     `json:"success" example:"true"`
	Data    []string `json:"data"`
}

type HealthResponseDTO struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Mongo     string `json:"mongo"`
	Timestamp string `json:"timestamp"`
}

type APIInfoResponseDTO struct {
	Success   bool                         `json:"success"`
	Message   string                       `json:"message"`
	Version   string                       `json:"version"`
	Endpoints map[string]map[string]string `json:"endpoints"`
}
