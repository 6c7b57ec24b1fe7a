package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/fhuszti/assets-cdn-go/internal/port"
)

type mockWarmer struct {
	in     port.WarmVariantInput
	called bool
	err    error
}

func (m *mockWarmer) WarmVariant(ctx context.Context, in port.WarmVariantInput) error {
	m.called = true
	m.in = in
	return m.err
}

func TestWarmVariantHandler_InvalidPayload(t *testing.T) {
	svc := &mockWarmer{}
	in := port.WarmVariantInput{ID: "01H5Q3", Bucket: "attachments"} // no dimensions

	err := WarmVariantHandler(context.Background(), in, svc)
	if err == nil {
		t.Fatal("expected error for payload without dimensions")
	}
	if svc.called {
		t.Error("service should not be called on an invalid payload")
	}
}

func TestWarmVariantHandler_ServiceError(t *testing.T) {
	svcErr := errors.New("svc fail")
	svc := &mockWarmer{err: svcErr}
	in := port.WarmVariantInput{ID: "01H5Q3", Bucket: "attachments", Width: 400, Height: 300}

	err := WarmVariantHandler(context.Background(), in, svc)
	if !errors.Is(err, svcErr) {
		t.Fatalf("got error %v; want %v", err, svcErr)
	}
	if !svc.called {
		t.Error("service not called")
	}
	if svc.in != in {
		t.Errorf("service got %+v; want %+v", svc.in, in)
	}
}

func TestWarmVariantHandler_Success(t *testing.T) {
	svc := &mockWarmer{}
	in := port.WarmVariantInput{ID: "01H5Q3", Bucket: "attachments", Width: 400, Height: 300, Fit: "cover"}

	err := WarmVariantHandler(context.Background(), in, svc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !svc.called {
		t.Error("service not called")
	}
	if svc.in != in {
		t.Errorf("service got %+v; want %+v", svc.in, in)
	}
}
