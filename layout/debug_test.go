package layout

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestEncodeDebugJSON(t *testing.T) {
	doc, err := Paginate(makeLines(3), testGeometry())
	if err != nil {
		t.Fatalf("Paginate error: %v", err)
	}
	doc.Meta.Title = "debug"

	var buf bytes.Buffer
	if err := EncodeDebugJSON(&buf, doc); err != nil {
		t.Fatalf("EncodeDebugJSON error: %v", err)
	}
	var back Document
	if err := json.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatalf("debug JSON is not valid: %v", err)
	}
	if len(back.Pages) != 1 || len(back.Pages[0].Lines) != 3 || back.Meta.Title != "debug" {
		t.Fatalf("unexpected debug document: %+v", back)
	}
	if back.Pages[0].Lines[1].Y != doc.Pages[0].Lines[1].Y {
		t.Fatalf("coordinates lost in debug output")
	}
}

func TestWriteDebugJSONFile(t *testing.T) {
	doc, err := Paginate(nil, testGeometry())
	if err != nil {
		t.Fatalf("Paginate error: %v", err)
	}
	path := filepath.Join(t.TempDir(), "layout.json")
	if err := WriteDebugJSON(doc, path); err != nil {
		t.Fatalf("WriteDebugJSON error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte(`"lines": []`)) {
		t.Fatalf("empty page should encode an empty lines array:\n%s", data)
	}
}
