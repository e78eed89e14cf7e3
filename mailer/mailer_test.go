package mailer

import (
	"encoding/base64"
	"strings"
	"testing"
)

func TestBuildMIMEPlain(t *testing.T) {
	msg := Message{
		To:      "guest@example.com",
		Subject: "Hello",
		Body:    "Just a plain note.",
	}

	raw := string(BuildMIME("noreply@example.com", msg))

	if !strings.Contains(raw, "To: guest@example.com\r\n") {
		t.Error("missing To header")
	}
	if !strings.Contains(raw, "Subject: Hello\r\n") {
		t.Error("missing Subject header")
	}
	if !strings.Contains(raw, "Content-Type: text/plain") {
		t.Error("missing plain text content type")
	}
	if strings.Contains(raw, "multipart/mixed") {
		t.Error("plain message must not be multipart")
	}
	if !strings.Contains(raw, "Just a plain note.") {
		t.Error("missing body")
	}
}

func TestBuildMIMEWithAttachment(t *testing.T) {
	content := []byte("%PDF-1.4 fake document body for the attachment test")
	msg := Message{
		To:      "guest@example.com",
		Subject: "Your invitation",
		Body:    "Find your invitation attached.",
		Attachments: []Attachment{{
			Filename: "invitation-r1.pdf",
			Content:  content,
		}},
	}

	raw := string(BuildMIME("noreply@example.com", msg))

	if !strings.Contains(raw, "multipart/mixed") {
		t.Fatal("attachment message must be multipart/mixed")
	}
	if !strings.Contains(raw, `filename="invitation-r1.pdf"`) {
		t.Error("missing attachment filename")
	}
	if !strings.Contains(raw, "Content-Transfer-Encoding: base64") {
		t.Error("missing base64 transfer encoding header")
	}

	// the base64 block must decode back to the original content
	start := strings.Index(raw, "Content-Disposition: attachment")
	if start < 0 {
		t.Fatal("missing attachment part")
	}
	block := raw[start:]
	blankLine := strings.Index(block, "\r\n\r\n")
	if blankLine < 0 {
		t.Fatal("attachment part has no body")
	}
	body := block[blankLine+4:]
	end := strings.Index(body, "--"+attachmentBoundary)
	if end < 0 {
		t.Fatal("unterminated attachment part")
	}
	encoded := strings.ReplaceAll(strings.TrimSpace(body[:end]), "\r\n", "")

	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		t.Fatalf("attachment is not valid base64: %v", err)
	}
	if string(decoded) != string(content) {
		t.Error("decoded attachment does not match original content")
	}
}
