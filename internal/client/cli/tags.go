package cli

import (
	"context"
	"strings"
)

// tagArgs splits "<id> a b,c" into the id and the tag list.
func tagArgs(args []string) (string, []string) {
	return args[0], splitTags(strings.Join(args[1:], ","))
}

func (a *App) Tag(ctx context.Context, args []string) error {
	id, tags := tagArgs(args)

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	added, err := a.client.AddTags(ctx, id, tags)
	if err != nil {
		return a.fail(err)
	}

	if len(added) == 0 {
		a.printf("No new tags\n")
		return nil
	}
	a.printf("Added: %s\n", strings.Join(added, ", "))
	return nil
}

func (a *App) Untag(ctx context.Context, args []string) error {
	id, tags := tagArgs(args)

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	removed, err := a.client.RemoveTags(ctx, id, tags)
	if err != nil {
		return a.fail(err)
	}

	if len(removed) == 0 {
		a.printf("No tags removed\n")
		return nil
	}
	a.printf("Removed: %s\n", strings.Join(removed, ", "))
	return nil
}

func (a *App) SetTags(ctx context.Context, args []string) error {
	id, tags := tagArgs(args)

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	if err := a.client.SetTags(ctx, id, tags); err != nil {
		return a.fail(err)
	}

	a.printf("Tags set: [%s]\n", strings.Join(tags, ", "))
	return nil
}
