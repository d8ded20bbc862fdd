package tenant

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugFromPath(t *testing.T) {
	cases := map[string]string{
		"/site/acme":            "acme",
		"/site/acme/":           "acme",
		"/site/acme/cart":       "acme",
		"/site/acme/product/42": "acme",
		"/site/acme?tab=new":    "acme",
		"/site/acme#top":        "acme",
		"/preview":              "",
		"/":                     "",
		"":                      "",
		"/site":                 "",
		"/site/":                "",
		"/sites/acme":           "",
		"/admin/site/acme":      "",
		"/site//cart":           "",
	}
	for path, want := range cases {
		assert.Equal(t, want, SlugFromPath(path), "path %q", path)
	}
}

func TestHistoryNotifiesEveryChange(t *testing.T) {
	ctx := context.Background()
	h := NewHistory("/")

	var seen []string
	unsub := h.Subscribe(func(_ context.Context, path string) { seen = append(seen, path) })

	h.Push(ctx, "/site/acme")
	h.Push(ctx, "/site/acme/cart")
	assert.True(t, h.Back(ctx))
	assert.True(t, h.Forward(ctx))
	assert.False(t, h.Forward(ctx))
	h.Replace(ctx, "/preview")

	assert.Equal(t, []string{"/site/acme", "/site/acme/cart", "/site/acme", "/site/acme/cart", "/preview"}, seen)
	assert.Equal(t, "/preview", h.Current())

	unsub()
	h.Push(ctx, "/site/other")
	assert.Len(t, seen, 5)
}

func TestHistoryPushDropsForwardEntries(t *testing.T) {
	ctx := context.Background()
	h := NewHistory("/a")
	h.Push(ctx, "/b")
	h.Back(ctx)
	h.Push(ctx, "/c")

	assert.False(t, h.Forward(ctx))
	assert.True(t, h.Back(ctx))
	assert.Equal(t, "/a", h.Current())
	assert.False(t, h.Back(ctx))
}

func TestResolverReportsSlugChangesOnly(t *testing.T) {
	ctx := context.Background()
	h := NewHistory("/site/acme")
	r := NewResolver(h)
	defer r.Close()
	assert.Equal(t, "acme", r.Slug())

	var changes []string
	r.OnChange(func(_ context.Context, slug string) { changes = append(changes, slug) })

	h.Push(ctx, "/site/acme/cart")
	h.Push(ctx, "/site/beta")
	h.Push(ctx, "/preview")
	h.Back(ctx)

	assert.Equal(t, []string{"beta", "", "beta"}, changes)
	assert.Equal(t, "beta", r.Slug())
}
