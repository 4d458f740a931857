package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	flag "github.com/spf13/pflag"

	"blog-server/blogclient"
	"blog-server/dto"
	"blog-server/feeder"
	"blog-server/httpclient"
)

var errUsage = errors.New("wrong number of arguments")

func commands() []*Command {
	return []*Command{
		listCommand(),
		showCommand(),
		activityCommand(),
		createCommand(),
		editCommand(),
		deleteCommand(),
		categoriesCommand(),
		importCommand(),
	}
}

func listCommand() *Command {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	page := fs.Int("page", 1, "Page number (1-based)")
	limit := fs.Int("limit", 10, "Posts per page")
	category := fs.String("category", "", "Only posts of this category")
	search := fs.String("search", "", "Substring of title, content or tags")
	status := fs.String("status", "", "draft, published or all (default published)")
	sortBy := fs.String("sort-by", "", "createdAt, updatedAt, title, viewCount, author, category or status")
	sortOrder := fs.String("sort-order", "", "asc or desc (default desc)")

	return &Command{
		Flags: fs,
		Usage: "list [flags]",
		Short: "List posts",
		Exec: func(ctx context.Context, env *Env, args []string) error {
			if len(args) != 0 {
				return errUsage
			}
			params := blogclient.ListParams{
				Page:      *page,
				Limit:     *limit,
				Category:  *category,
				Search:    *search,
				SortBy:    *sortBy,
				SortOrder: *sortOrder,
			}
			if fs.Changed("status") {
				params.Status = status
			}
			result, err := env.Client.ListPosts(ctx, params)
			if err != nil {
				return err
			}
			return blogclient.RenderListing(env.Out, result)
		},
	}
}

func showCommand() *Command {
	return &Command{
		Flags: flag.NewFlagSet("show", flag.ContinueOnError),
		Usage: "show <id>",
		Short: "Show a post",
		Exec: func(ctx context.Context, env *Env, args []string) error {
			if len(args) != 1 {
				return errUsage
			}
			p, err := env.Client.GetPost(ctx, args[0])
			if err != nil {
				return err
			}
			return blogclient.RenderPost(env.Out, p)
		},
	}
}

func activityCommand() *Command {
	fs := flag.NewFlagSet("activity", flag.ContinueOnError)
	limit := fs.Int("limit", 0, "Max entries (server default 20)")

	return &Command{
		Flags: fs,
		Usage: "activity <id> [--limit N]",
		Short: "Show the recorded lifecycle events of a post",
		Exec: func(ctx context.Context, env *Env, args []string) error {
			if len(args) != 1 {
				return errUsage
			}
			items, err := env.Client.PostActivity(ctx, args[0], *limit)
			if err != nil {
				return err
			}
			if len(items) == 0 {
				fmt.Fprintln(env.Out, "No activity recorded.")
				return nil
			}
			for _, a := range items {
				fmt.Fprintf(env.Out, "%s  %-12s %s\n", a.OccurredAt.Format(time.RFC3339), a.Type, a.Title)
			}
			return nil
		},
	}
}

// postFlags are the post fields shared by create and edit. Blank values are
// left out of the payload.
type postFlags struct {
	title, content, excerpt, author, category, tags, status *string
}

func addPostFlags(fs *flag.FlagSet) postFlags {
	return postFlags{
		title:    fs.StringP("title", "t", "", "Post title"),
		content:  fs.StringP("content", "c", "", "Post content"),
		excerpt:  fs.String("excerpt", "", "Short summary, derived from content when empty"),
		author:   fs.String("author", "", "Author"),
		category: fs.String("category", "", "Category"),
		tags:     fs.String("tags", "", "Comma separated tags"),
		status:   fs.String("status", "", "draft or published"),
	}
}

func (f postFlags) payload() dto.PostPayload {
	in := dto.PostPayload{
		Title:    *f.title,
		Content:  *f.content,
		Excerpt:  *f.excerpt,
		Author:   *f.author,
		Category: *f.category,
		Status:   *f.status,
	}
	if strings.TrimSpace(*f.tags) != "" {
		in.Tags = dto.Tags(dto.SplitTags(*f.tags)...)
	}
	return in
}

func createCommand() *Command {
	fs := flag.NewFlagSet("create", flag.ContinueOnError)
	fields := addPostFlags(fs)

	return &Command{
		Flags: fs,
		Usage: "create -t <title> -c <content> [flags]",
		Short: "Create a post (author Anonymous, category General, status draft unless given)",
		Exec: func(ctx context.Context, env *Env, args []string) error {
			if len(args) != 0 {
				return errUsage
			}
			p, err := env.Client.CreatePost(ctx, fields.payload())
			if err != nil {
				return err
			}
			fmt.Fprintln(env.Out, p.ID)
			return nil
		},
	}
}

func editCommand() *Command {
	fs := flag.NewFlagSet("edit", flag.ContinueOnError)
	fields := addPostFlags(fs)

	return &Command{
		Flags: fs,
		Usage: "edit <id> [flags]",
		Short: "Update a post, blank flags keep the stored value",
		Exec: func(ctx context.Context, env *Env, args []string) error {
			if len(args) != 1 {
				return errUsage
			}
			p, err := env.Client.UpdatePost(ctx, args[0], fields.payload())
			if err != nil {
				return err
			}
			fmt.Fprintln(env.Out, "updated", p.ID)
			return nil
		},
	}
}

func deleteCommand() *Command {
	return &Command{
		Flags: flag.NewFlagSet("delete", flag.ContinueOnError),
		Usage: "delete <id>",
		Short: "Delete a post",
		Exec: func(ctx context.Context, env *Env, args []string) error {
			if len(args) != 1 {
				return errUsage
			}
			if err := env.Client.DeletePost(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintln(env.Out, "deleted", args[0])
			return nil
		},
	}
}

func categoriesCommand() *Command {
	fs := flag.NewFlagSet("categories", flag.ContinueOnError)
	managed := fs.Bool("managed", false, "List the category collection instead of categories in use")
	description := fs.String("description", "", "Description of a category created with add")

	return &Command{
		Flags: fs,
		Usage: "categories [--managed] | categories add <name> [--description]",
		Short: "List categories of published posts or add a category",
		Exec: func(ctx context.Context, env *Env, args []string) error {
			switch {
			case len(args) == 2 && args[0] == "add":
				c, err := env.Client.CreateCategory(ctx, dto.CategoryPayload{Name: args[1], Description: *description})
				if err != nil {
					return err
				}
				fmt.Fprintln(env.Out, c.ID)
				return nil
			case len(args) != 0:
				return errUsage
			}

			if *managed {
				cats, err := env.Client.ListCategories(ctx)
				if err != nil {
					return err
				}
				for _, c := range cats {
					if c.Description != "" {
						fmt.Fprintf(env.Out, "%s\t%s\n", c.Name, c.Description)
						continue
					}
					fmt.Fprintln(env.Out, c.Name)
				}
				return nil
			}
			names, err := env.Client.ListPostCategories(ctx)
			if err != nil {
				return err
			}
			for _, n := range names {
				fmt.Fprintln(env.Out, n)
			}
			return nil
		},
	}
}

func importCommand() *Command {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	feedURL := fs.String("feed", "", "RSS or Atom feed URL (required)")
	limit := fs.Int("limit", 10, "Import at most N items, 0 for all")
	status := fs.String("status", "draft", "Status of the imported posts")

	return &Command{
		Flags: fs,
		Usage: "import --feed <url> [flags]",
		Short: "Create posts from a feed",
		Exec: func(ctx context.Context, env *Env, args []string) error {
			if len(args) != 0 {
				return errUsage
			}
			if *feedURL == "" {
				return errors.New("--feed is required")
			}
			items, err := feeder.FetchItems(ctx, *feedURL, *limit, httpclient.NewDefault())
			if err != nil {
				return fmt.Errorf("fetch feed: %w", err)
			}

			var created, failed int
			for _, item := range items {
				p, err := env.Client.CreatePost(ctx, feeder.ToPostPayload(item, *status))
				if err != nil {
					failed++
					fmt.Fprintf(env.Err, "skip %q: %v\n", item.Title, err)
					continue
				}
				created++
				fmt.Fprintf(env.Out, "%s\t%s\n", p.ID, p.Title)
			}
			fmt.Fprintf(env.Out, "imported %d of %d items\n", created, len(items))
			if failed > 0 && created == 0 {
				return fmt.Errorf("no items imported")
			}
			return nil
		},
	}
}
