package view

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestEveryPageRenders(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	for _, name := range []string{"homepage", "login", "create-post"} {
		w := httptest.NewRecorder()
		data := gin.H{"Identity": nil, "Errors": []string{"first", "<second>"}, "Title": "", "Body": ""}
		if err := r.Instance(name, data).Render(w); err != nil {
			t.Fatalf("render %s: %v", name, err)
		}
		body := w.Body.String()
		if !strings.Contains(body, `<li class="error">first</li>`) || !strings.Contains(body, "&lt;second&gt;") {
			t.Errorf("%s does not list escaped errors: %s", name, body)
		}
	}
}

func TestUnknownPage(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatal(err)
	}
	w := httptest.NewRecorder()
	if err := r.Instance("missing", nil).Render(w); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(w.Body.String(), "missing") {
		t.Fatalf("body %q", w.Body.String())
	}
}
