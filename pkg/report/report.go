// Package report formats probe requests and responses for human
// inspection.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/monetize-software/gateway-probe/pkg/gateway"
)

var sensitiveHeaderKeywords = []string{
	"authorization",
	"api-key",
	"x-api-key",
	"cookie",
	"token",
	"x-auth-token",
}

// RedactHeaders replaces the value of any header whose name contains a
// sensitive keyword with "***". Only the printed summary is redacted,
// the request still carries the real values.
func RedactHeaders(headers map[string]any) map[string]any {
	if len(headers) == 0 {
		return headers
	}

	redacted := make(map[string]any, len(headers))
	for key, value := range headers {
		lower := strings.ToLower(key)
		hidden := false
		for _, keyword := range sensitiveHeaderKeywords {
			if strings.Contains(lower, keyword) {
				hidden = true
				break
			}
		}
		if hidden {
			redacted[key] = "***"
		} else {
			redacted[key] = value
		}
	}
	return redacted
}

// PrettyJSON renders v with two-space indentation and sorted keys so
// two identical probes print identical output.
func PrettyJSON(v any) string {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Sprint(v)
	}
	return strings.TrimRight(buf.String(), "\n")
}

const maxTextBody = 50_000

// TruncateBody caps non-JSON bodies at 50,000 bytes with a trailing
// marker.
func TruncateBody(text string) string {
	if len(text) <= maxTextBody {
		return text
	}
	return text[:maxTextBody] + "\n... [truncated]"
}

// FormatRequest renders the outgoing request summary. Sensitive header
// values are redacted.
func FormatRequest(req *gateway.Request) string {
	var b strings.Builder
	b.WriteString("\n=== API Provider Gateway Request ===\n")
	fmt.Fprintf(&b, "URL:        %s\n", req.URL)
	fmt.Fprintf(&b, "Method:     %s\n", req.Method)
	fmt.Fprintf(&b, "Timeout:    %gs\n", req.Timeout.Seconds())
	if len(req.Params) > 0 {
		b.WriteString("Query Params:\n")
		b.WriteString(PrettyJSON(req.Params) + "\n")
	}
	if len(req.Headers) > 0 {
		b.WriteString("Headers (redacted):\n")
		b.WriteString(PrettyJSON(RedactHeaders(req.Headers)) + "\n")
	}
	if req.Body != nil {
		b.WriteString("Body:\n")
		b.WriteString(PrettyJSON(req.Body) + "\n")
	}
	return b.String()
}

// FormatResponse renders the response summary. JSON bodies are pretty
// printed, anything else is printed as truncated text.
func FormatResponse(res *gateway.Response) string {
	var b strings.Builder
	b.WriteString("\n=== Response ===\n")
	fmt.Fprintf(&b, "Status: %d\n", res.StatusCode)
	if len(res.Headers) > 0 {
		b.WriteString("Headers:\n")
		b.WriteString(PrettyJSON(res.Headers) + "\n")
	}
	if res.JSON != nil {
		b.WriteString("JSON Body:\n")
		b.WriteString(PrettyJSON(res.JSON) + "\n")
	} else {
		b.WriteString("Text Body:\n")
		b.WriteString(TruncateBody(res.Body) + "\n")
	}
	return b.String()
}

const authHints = `
Hint: Received 401/403 from gateway.
- If your API key is stored in the provider settings, do not send Authorization; the gateway forwards it.
- If the platform requires user/session auth, include your session cookie in --headers (Cookie: ...).
- Ensure the extra path and method match the target API (e.g., chat/completions with POST).
`

// HintsFor returns remediation hints for auth failures and "" for all
// other status codes.
func HintsFor(statusCode int) string {
	if statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden {
		return authHints
	}
	return ""
}
