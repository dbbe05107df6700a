package pmpsdb

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestUploadDownloadRoundTrip(t *testing.T) {
	plc := newMockPLC()
	client := newTestClient(plc)
	ctx := context.Background()

	content := []byte(`{"dev1": {"nRate": 120}}`)
	if err := client.Upload(ctx, "plc-tst-motion", "tst-motion.json", bytes.NewReader(content), ""); err != nil {
		t.Fatalf("upload: %v", err)
	}

	got, err := client.Download(ctx, "plc-tst-motion", "tst-motion.json", "")
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	if !bytes.Equal(got, content) {
		t.Errorf("round trip mismatch: got %q, want %q", got, content)
	}
}

func TestUpload_OverwritesExistingFile(t *testing.T) {
	plc := newMockPLC()
	plc.setFile("tst-motion.json", []byte("old"))
	client := newTestClient(plc)

	if err := client.Upload(context.Background(), "plc-tst-motion", "tst-motion.json", bytes.NewReader([]byte("new")), ""); err != nil {
		t.Fatalf("upload: %v", err)
	}
	if got := plc.files["tst-motion.json"]; string(got) != "new" {
		t.Errorf("remote content = %q, want %q", got, "new")
	}
}

func TestDownload_MissingFile(t *testing.T) {
	plc := newMockPLC()
	client := newTestClient(plc)

	data, err := client.Download(context.Background(), "plc-tst-motion", "device1.json", "")
	var pe *ProtocolError
	if !errors.As(err, &pe) || pe.Code != 550 {
		t.Fatalf("error = %v, want protocol error 550", err)
	}
	if data != nil {
		t.Errorf("data = %v, want nil", data)
	}
}

func TestUploadFile_DefaultsToBaseName(t *testing.T) {
	plc := newMockPLC()
	client := newTestClient(plc)

	dir := t.TempDir()
	localPath := filepath.Join(dir, "tst-motion.json")
	if err := os.WriteFile(localPath, []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := client.UploadFile(context.Background(), "plc-tst-motion", localPath, "", ""); err != nil {
		t.Fatalf("upload file: %v", err)
	}
	if _, ok := plc.files["tst-motion.json"]; !ok {
		t.Errorf("remote files = %v, want tst-motion.json", plc.order)
	}
}

func TestUploadFile_ExplicitTargetName(t *testing.T) {
	plc := newMockPLC()
	client := newTestClient(plc)

	dir := t.TempDir()
	localPath := filepath.Join(dir, "export-2024-06-01.json")
	if err := os.WriteFile(localPath, []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := client.UploadFile(context.Background(), "plc-tst-motion", localPath, "tst-motion.json", ""); err != nil {
		t.Fatalf("upload file: %v", err)
	}
	if _, ok := plc.files["tst-motion.json"]; !ok {
		t.Errorf("remote files = %v, want tst-motion.json", plc.order)
	}
}

func TestUploadFile_MissingLocalFile(t *testing.T) {
	plc := newMockPLC()
	client := newTestClient(plc)

	err := client.UploadFile(context.Background(), "plc-tst-motion", filepath.Join(t.TempDir(), "nope.json"), "", "")
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("error = %v, want wrapped fs.ErrNotExist", err)
	}
	if plc.storeCalls != 0 {
		t.Error("no session should open when the local file is missing")
	}
}

func TestUpload_ProtocolFailurePropagates(t *testing.T) {
	plc := newMockPLC()
	plc.errs["Store"] = &ProtocolError{Code: 553, Msg: "Could not create file."}
	client := newTestClient(plc)

	err := client.Upload(context.Background(), "plc-tst-motion", "tst-motion.json", bytes.NewReader([]byte("{}")), "")
	var pe *ProtocolError
	if !errors.As(err, &pe) || pe.Code != 553 {
		t.Fatalf("error = %v, want protocol error 553", err)
	}
}
