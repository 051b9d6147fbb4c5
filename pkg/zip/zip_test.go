package zip

import (
	stdzip "archive/zip"
	"bytes"
	"io"
	"testing"
)

func TestArchiveAssetsRoundTrip(t *testing.T) {
	archive := ArchiveAssets([]Asset{
		{Filename: "a.png", Data: []byte("aaa")},
		{Filename: "b.png", Data: []byte("bbb")},
	})
	reader, err := stdzip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		t.Fatalf("not a zip archive: %v", err)
	}
	if len(reader.File) != 2 {
		t.Fatalf("archive has %d entries, want 2", len(reader.File))
	}
	rc, err := reader.File[0].Open()
	if err != nil {
		t.Fatalf("open entry: %v", err)
	}
	defer rc.Close()
	data, _ := io.ReadAll(rc)
	if string(data) != "aaa" {
		t.Fatalf("entry data mismatch: %q", data)
	}
}
