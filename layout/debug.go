package layout

import (
	"encoding/json"
	"io"
	"os"
)

// EncodeDebugJSON 把排版结果（页、行与坐标）写成缩进 JSON。
func EncodeDebugJSON(w io.Writer, doc *Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// WriteDebugJSON 将排版结果输出到 path；path 为 "-" 时写到标准输出。
func WriteDebugJSON(doc *Document, path string) error {
	if doc == nil {
		return nil
	}
	if path == "-" {
		return EncodeDebugJSON(os.Stdout, doc)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := EncodeDebugJSON(f, doc); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
