package response

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"sos-srv/pkg/discord"

	"github.com/gin-gonic/gin"
)

const reportTimeout = 30 * time.Second

// reportBug ships the report without holding up the response.
func reportBug(d discord.IDiscord, message string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), reportTimeout)
		defer cancel()
		for _, chunk := range splitMessage(message, discordMaxMessageLen) {
			if err := d.ReportBug(ctx, chunk); err != nil {
				log.Printf("pkg.response.reportBug.ReportBug: %v\n", err)
			}
		}
	}()
}

// splitMessage cuts message into chunks of at most max bytes, preferring
// line boundaries.
func splitMessage(message string, max int) []string {
	var (
		chunks  []string
		current strings.Builder
	)
	flush := func() {
		if current.Len() > 0 {
			chunks = append(chunks, strings.TrimSuffix(current.String(), "\n"))
			current.Reset()
		}
	}
	for _, line := range strings.Split(message, "\n") {
		line += "\n"
		if current.Len()+len(line) > max {
			flush()
			for len(line) > max {
				chunks = append(chunks, line[:max])
				line = line[max:]
			}
		}
		current.WriteString(line)
	}
	flush()
	return chunks
}

// buildReport renders the request and error into a plain text block. The
// Authorization and Cookie headers are left out.
func buildReport(c *gin.Context, errString string, backtrace []string) string {
	var sb strings.Builder
	sb.WriteString(reportTitle + "\n")
	if c != nil && c.Request != nil {
		req := c.Request
		fmt.Fprintf(&sb, "Route   : %s\n", req.URL.Path)
		fmt.Fprintf(&sb, "Method  : %s\n", req.Method)
		sb.WriteString(reportRule + "\n")

		if params := req.URL.Query().Encode(); params != "" {
			fmt.Fprintf(&sb, "Params  : %s\n", params)
		}
		if req.Body != nil {
			body, err := io.ReadAll(req.Body)
			if err == nil {
				req.Body = io.NopCloser(bytes.NewBuffer(body))
			}
			if len(body) > 0 {
				sb.WriteString("Body    :\n")
				var pretty bytes.Buffer
				if json.Indent(&pretty, body, "    ", "  ") == nil {
					sb.WriteString(pretty.String() + "\n")
				} else {
					sb.WriteString("    " + string(body) + "\n")
				}
				sb.WriteString(reportRule + "\n")
			}
		}
	}

	fmt.Fprintf(&sb, "Error   : %s\n", errString)
	if len(backtrace) > 0 {
		sb.WriteString("\nBacktrace:\n")
		for i, line := range backtrace {
			fmt.Fprintf(&sb, "[%d]: %s\n", i, line)
		}
	}
	sb.WriteString(strings.Repeat("=", len(reportTitle)) + "\n")
	return sb.String()
}
