package pagination

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func paramsFor(target string) Params {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	return FromContext(e.NewContext(req, httptest.NewRecorder()))
}

func TestFromContext_Defaults(t *testing.T) {
	p := paramsFor("/api/v1/appointments")
	if p.Limit != DefaultLimit || p.Offset != 0 {
		t.Errorf("got %+v", p)
	}
}

func TestFromContext_Explicit(t *testing.T) {
	p := paramsFor("/api/v1/appointments?limit=5&offset=10")
	if p.Limit != 5 || p.Offset != 10 {
		t.Errorf("got %+v", p)
	}
}

func TestFromContext_Clamped(t *testing.T) {
	p := paramsFor("/api/v1/appointments?limit=1000&offset=-3")
	if p.Limit != MaxLimit {
		t.Errorf("limit = %d, want %d", p.Limit, MaxLimit)
	}
	if p.Offset != 0 {
		t.Errorf("offset = %d, want 0", p.Offset)
	}
}

func TestResponse_HasMore(t *testing.T) {
	r := NewResponse(nil, 50, 20, 20)
	if !r.HasMore {
		t.Error("expected more pages at offset 20 of 50")
	}
	r = NewResponse(nil, 50, 20, 40)
	if r.HasMore {
		t.Error("expected last page at offset 40 of 50")
	}
}

func TestOffsets(t *testing.T) {
	p := Params{Limit: 20, Offset: 10}
	if p.NextOffset() != 30 {
		t.Errorf("next = %d", p.NextOffset())
	}
	if p.PreviousOffset() != 0 {
		t.Errorf("previous = %d", p.PreviousOffset())
	}
	if !p.HasNext(100) || p.HasNext(25) {
		t.Error("HasNext boundaries wrong")
	}
}
