package ctxutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestUserID_RoundTrip(t *testing.T) {
	t.Parallel()

	want := uuid.New()
	ctx := WithUserID(context.Background(), want)

	got, ok := UserIDFromCtx(ctx)
	if !ok {
		t.Fatal("expected ok=true")
	}
	if got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func TestUserID_Absent(t *testing.T) {
	t.Parallel()

	tests := map[string]context.Context{
		"empty context": context.Background(),
		"nil uuid":      WithUserID(context.Background(), uuid.Nil),
		"wrong type":    context.WithValue(context.Background(), userIDKey, "not-a-uuid"),
	}

	for name, ctx := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, ok := UserIDFromCtx(ctx)
			if ok {
				t.Fatal("expected ok=false")
			}
			if got != uuid.Nil {
				t.Fatalf("got %s, want uuid.Nil", got)
			}
		})
	}
}

func TestRequestID_RoundTrip(t *testing.T) {
	t.Parallel()

	ctx := WithRequestID(context.Background(), "req-123")
	if got := RequestIDFromCtx(ctx); got != "req-123" {
		t.Fatalf("got %q, want %q", got, "req-123")
	}
}

func TestRequestID_Absent(t *testing.T) {
	t.Parallel()

	if got := RequestIDFromCtx(context.Background()); got != "" {
		t.Fatalf("got %q, want empty", got)
	}

	ctx := context.WithValue(context.Background(), requestIDKey, 12345)
	if got := RequestIDFromCtx(ctx); got != "" {
		t.Fatalf("got %q, want empty for wrong type", got)
	}
}
