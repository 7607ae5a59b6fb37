package errors

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{
			name:    "runtime error",
			code:    "E001",
			wantMsg: "Invalid mount container",
			wantCat: CategoryRuntime,
		},
		{
			name:    "storage error",
			code:    "E003",
			wantMsg: "Snapshot could not be decoded",
			wantCat: CategoryStorage,
		},
		{
			name:    "routing error",
			code:    "E010",
			wantMsg: "Invalid route pattern",
			wantCat: CategoryRouting,
		},
		{
			name:    "unknown error code",
			code:    "E999",
			wantMsg: "Unknown error",
			wantCat: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestNewf(t *testing.T) {
	err := Newf(CategoryCLI, "flag %q is required", "path")
	if err.Message != `flag "path" is required` {
		t.Errorf("Message = %q", err.Message)
	}
	if err.Error() != `flag "path" is required` {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestDotError_Error(t *testing.T) {
	err := New("E001").WithDetail("container is %s", "nil")
	want := "E001: Invalid mount container: container is nil"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	wrapped := New("E004").Wrap(fmt.Errorf("disk full"))
	if !strings.HasSuffix(wrapped.Error(), ": disk full") {
		t.Errorf("Error() = %q, want the cause appended", wrapped.Error())
	}
}

func TestBuildersCopy(t *testing.T) {
	base := New("E010")
	derived := base.WithDetail("bad pattern").WithSuggestion("use :id")

	if base.Detail != "" || base.Suggestion != "" {
		t.Error("builder mutated the receiver")
	}
	if derived.Detail != "bad pattern" || derived.Suggestion != "use :id" {
		t.Errorf("derived = %+v", derived)
	}
}

func TestIsMatchesByCode(t *testing.T) {
	sentinel := New("E001")
	err := fmt.Errorf("mount: %w", New("E001").WithDetail("detached"))

	if !stderrors.Is(err, sentinel) {
		t.Error("errors.Is did not match by code")
	}
	if stderrors.Is(err, New("E002")) {
		t.Error("errors.Is matched a different code")
	}
	if stderrors.Is(Newf(CategoryCLI, "x"), Newf(CategoryCLI, "x")) {
		t.Error("errors without a code should not match")
	}
}

func TestDotError_Wrap(t *testing.T) {
	cause := stderrors.New("original error")
	err := New("E021").Wrap(cause)

	if err.Unwrap() != cause {
		t.Error("Unwrap() should return wrapped error")
	}
	if !stderrors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped error")
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "E001") != nil {
		t.Error("FromError(nil) should return nil")
	}

	std := stderrors.New("boom")
	de := FromError(std, "E004")
	if de.Code != "E004" || de.Wrapped != std {
		t.Errorf("FromError(std) = %+v", de)
	}

	orig := New("E003")
	if FromError(fmt.Errorf("ctx: %w", orig), "E004") != orig {
		t.Error("FromError should return the DotError already in the chain")
	}
}

func TestCode(t *testing.T) {
	if got := Code(fmt.Errorf("x: %w", New("E022"))); got != "E022" {
		t.Errorf("Code() = %q, want E022", got)
	}
	if got := Code(stderrors.New("plain")); got != "" {
		t.Errorf("Code(plain) = %q, want empty", got)
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	err := New("E001").
		WithDetail("container is not attached").
		WithSuggestion("Append it to document.body first")
	formatted := err.Format()

	for _, want := range []string{
		"ERROR E001: Invalid mount container",
		"container is not attached",
		"Hint: Append it to document.body first",
		"Learn more: " + docBase + "E001",
	} {
		if !strings.Contains(formatted, want) {
			t.Errorf("Format() missing %q:\n%s", want, formatted)
		}
	}
}

func TestFormatCompact(t *testing.T) {
	err := New("E010").WithDetail(`"/a/::b"`)
	want := `E010: Invalid route pattern ("/a/::b")`
	if got := err.FormatCompact(); got != want {
		t.Errorf("FormatCompact() = %q, want %q", got, want)
	}
}

func TestFormatJSON(t *testing.T) {
	err := New("E004").Wrap(stderrors.New("disk full"))

	var got map[string]string
	if jerr := json.Unmarshal([]byte(err.FormatJSON()), &got); jerr != nil {
		t.Fatalf("FormatJSON() is not valid JSON: %v", jerr)
	}
	if got["code"] != "E004" || got["category"] != "storage" || got["cause"] != "disk full" {
		t.Errorf("FormatJSON() = %v", got)
	}
}

func TestPrintError(t *testing.T) {
	DisableColors()
	defer EnableColors()

	var buf bytes.Buffer
	PrintError(&buf, New("E020"))
	if !strings.Contains(buf.String(), "ERROR E020") {
		t.Errorf("PrintError(DotError) = %q", buf.String())
	}

	buf.Reset()
	PrintError(&buf, stderrors.New("plain failure"))
	if !strings.Contains(buf.String(), "ERROR: plain failure") {
		t.Errorf("PrintError(plain) = %q", buf.String())
	}
}

func TestGetAllCodes(t *testing.T) {
	codes := GetAllCodes()
	found := false
	for _, code := range codes {
		if code == "E001" {
			found = true
			break
		}
	}
	if !found {
		t.Error("E001 should be in the codes list")
	}
}

func TestRegister(t *testing.T) {
	Register("E999", ErrorTemplate{
		Category: CategoryRuntime,
		Message:  "Custom test error",
	})
	defer delete(registry, "E999")

	if err := New("E999"); err.Message != "Custom test error" {
		t.Errorf("Message = %q, want %q", err.Message, "Custom test error")
	}
	if _, ok := GetTemplate("E999"); !ok {
		t.Error("GetTemplate(E999) missed after Register")
	}
}

func TestWrapText(t *testing.T) {
	got := wrapText("short text", 100)
	if len(got) != 1 || got[0] != "short text" {
		t.Errorf("wrapText short text: got %v", got)
	}

	got = wrapText("this is a longer text that should be wrapped", 20)
	if len(got) != 3 {
		t.Errorf("wrapText long text: expected 3 lines, got %d: %v", len(got), got)
	}

	if got = wrapText("", 10); len(got) != 0 {
		t.Errorf("wrapText empty: expected empty, got %v", got)
	}
}

func TestColorFunctions(t *testing.T) {
	EnableColors()
	if !strings.Contains(red("test"), "\033[31m") {
		t.Error("red should contain ANSI code when colors enabled")
	}

	DisableColors()
	if strings.Contains(red("test"), "\033[") {
		t.Error("red should not contain ANSI code when colors disabled")
	}
	EnableColors()
}
