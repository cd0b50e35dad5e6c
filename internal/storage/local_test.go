package storage

import (
	"context"
	"io"
	"testing"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"sentenca.docx", "sentenca.docx"},
		{"minha sentença.docx", "minha_sentença.docx"},
		{"../../etc/passwd", "passwd"},
		{`..\..\windows\cmd.exe`, "cmd.exe"},
		{"proc#01!/02.pdf", "02.pdf"},
		{"<<>>", "arquivo"},
		{"", "arquivo"},
	}

	for _, tt := range tests {
		if got := SanitizeFilename(tt.in); got != tt.want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLocalStoreSaveAndOpen(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalStore: %v", err)
	}

	ctx := context.Background()
	path, err := store.Save(ctx, "decisao.pdf", []byte("conteudo"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	reader, err := store.Open(ctx, path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "conteudo" {
		t.Errorf("got %q, want %q", data, "conteudo")
	}
}

func TestLocalStoreLastWriteWins(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalStore: %v", err)
	}

	ctx := context.Background()
	path1, err := store.Save(ctx, "sentenca.docx", []byte("primeira"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	path2, err := store.Save(ctx, "sentenca.docx", []byte("segunda"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if path1 != path2 {
		t.Fatalf("expected same path for same name, got %q and %q", path1, path2)
	}

	reader, err := store.Open(ctx, path1)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer reader.Close()

	data, _ := io.ReadAll(reader)
	if string(data) != "segunda" {
		t.Errorf("overwrite not last-write-wins: got %q", data)
	}
}

func TestLocalStoreOpenMissing(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalStore: %v", err)
	}

	if _, err := store.Open(context.Background(), "/nonexistent/file.pdf"); err == nil {
		t.Errorf("expected error opening missing file")
	}
}
