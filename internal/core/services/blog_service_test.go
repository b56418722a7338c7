package services

import (
	"context"
	"errors"
	"testing"

	"github.com/SDNATH-Git/blood-donation-serverset/internal/adapters/persistence/memory"
	"github.com/SDNATH-Git/blood-donation-serverset/internal/core/domain"

	"go.uber.org/zap"
)

func TestBlogLifecycle(t *testing.T) {
	svc := NewBlogService(memory.NewBlogStore(), zap.NewNop())
	ctx := context.Background()

	blog, err := svc.Create(ctx, "author@example.com", &BlogInput{Title: "Why donate", Content: "Body"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if blog.Status != domain.BlogDraft {
		t.Errorf("status = %q, want draft", blog.Status)
	}

	// Drafts do not show in the public feed.
	published, err := svc.Published(ctx)
	if err != nil {
		t.Fatalf("published: %v", err)
	}
	if len(published) != 0 {
		t.Errorf("public feed has %d drafts", len(published))
	}

	if err := svc.SetStatus(ctx, blog.ID, domain.BlogPublished); err != nil {
		t.Fatalf("publish: %v", err)
	}
	published, _ = svc.Published(ctx)
	if len(published) != 1 {
		t.Fatalf("public feed has %d entries, want 1", len(published))
	}

	if err := svc.SetStatus(ctx, blog.ID, domain.BlogDraft); err != nil {
		t.Fatalf("unpublish: %v", err)
	}
	published, _ = svc.Published(ctx)
	if len(published) != 0 {
		t.Errorf("public feed has %d entries after unpublish", len(published))
	}

	if err := svc.SetStatus(ctx, blog.ID, "archived"); !errors.Is(err, domain.ErrInvalidStatus) {
		t.Errorf("bad status err = %v, want ErrInvalidStatus", err)
	}
}

func TestBlogUpdateChangeDetection(t *testing.T) {
	svc := NewBlogService(memory.NewBlogStore(), zap.NewNop())
	ctx := context.Background()

	blog, err := svc.Create(ctx, "author@example.com", &BlogInput{Title: "Title", Content: "Body"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	changed, err := svc.Update(ctx, blog.ID, &BlogPatch{Title: "Title"})
	if err != nil {
		t.Fatalf("no-op update: %v", err)
	}
	if changed {
		t.Error("identical patch reported a change")
	}

	changed, err = svc.Update(ctx, blog.ID, &BlogPatch{Title: "New Title"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !changed {
		t.Error("real patch reported no change")
	}
}

func TestBlogValidation(t *testing.T) {
	svc := NewBlogService(memory.NewBlogStore(), zap.NewNop())
	ctx := context.Background()

	if _, err := svc.Create(ctx, "author@example.com", &BlogInput{}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("missing title err = %v, want ErrInvalidInput", err)
	}
	if _, err := svc.Get(ctx, "not-a-uuid"); !errors.Is(err, domain.ErrInvalidReference) {
		t.Errorf("bad id err = %v, want ErrInvalidReference", err)
	}
	if err := svc.Delete(ctx, "not-a-uuid"); !errors.Is(err, domain.ErrInvalidReference) {
		t.Errorf("bad delete id err = %v, want ErrInvalidReference", err)
	}
}
