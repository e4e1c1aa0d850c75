package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/ByLCY/quire/config"
	"github.com/ByLCY/quire/generate"
	"github.com/ByLCY/quire/layout"
	"github.com/ByLCY/quire/renderer"
	_ "github.com/ByLCY/quire/renderer/canvas"
	_ "github.com/ByLCY/quire/renderer/fpdf"
	"github.com/ByLCY/quire/server"
)

const usage = `用法:
  quire render -in <文本文件|-> -out <PDF 路径> [选项]
  quire serve  [-config quire.yaml]
`

func main() {
	args := os.Args[1:]
	cmd := "render"
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		cmd, args = args[0], args[1:]
	}

	var err error
	switch cmd {
	case "render":
		err = renderCmd(args)
	case "serve":
		err = serveCmd(args)
	case "help":
		fmt.Print(usage)
	default:
		fmt.Fprint(os.Stderr, usage)
		log.Fatalf("未知命令: %s", cmd)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func renderCmd(args []string) error {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	input := fs.String("in", "-", "文本文件路径，- 表示标准输入")
	output := fs.String("out", "output/export.pdf", "PDF 输出路径")
	profilePath := fs.String("profile", "", "版式文件路径，空表示默认 A4 版式")
	backend := fs.String("renderer", config.DefaultRenderer, "渲染器: "+strings.Join(renderer.Names(), "|"))
	font := fs.String("font", "", "字体名或 TTF 路径，覆盖版式中的设置")
	title := fs.String("title", "", "文档标题，覆盖版式中的设置")
	debug := fs.String("debug", "", "布局调试 JSON 输出路径，- 表示标准输出")
	dataJSON := fs.String("data", "", "绑定到 ${...} 占位符的 JSON 数据")
	keepParagraphs := fs.Bool("paragraphs", false, "保留换行与段落间空行")
	breakWords := fs.Bool("break-words", false, "在字符边界处拆分过宽的词")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var inputData any
	if *dataJSON != "" {
		if err := json.Unmarshal([]byte(*dataJSON), &inputData); err != nil {
			return fmt.Errorf("解析 data JSON 失败: %w", err)
		}
	}

	profile, err := loadProfile(*profilePath)
	if err != nil {
		return err
	}
	if *keepParagraphs {
		profile.Wrapper.KeepParagraphs = true
	}
	if *breakWords {
		profile.Wrapper.Overflow = layout.OverflowBreak
	}
	if *font != "" {
		profile.Font = *font
	}

	content, err := readInput(*input)
	if err != nil {
		return err
	}
	b, err := renderer.Open(*backend, profile.Font)
	if err != nil {
		return err
	}
	if err := run(content, *output, *debug, *title, inputData, profile, b); err != nil {
		return fmt.Errorf("生成 PDF 失败: %w", err)
	}
	fmt.Printf("已生成 PDF：%s\n", *output)
	return nil
}

// run 串联排版、调试输出与写文件。
func run(content, outputPath, debugPath, title string, data any, profile layout.Profile, b renderer.Backend) error {
	doc, out, err := renderer.Export(b, profile, content, title, data)
	if doc != nil && debugPath != "" {
		if derr := writeDebug(doc, debugPath); derr != nil {
			return derr
		}
	}
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	if err := os.WriteFile(outputPath, out, 0o644); err != nil {
		return fmt.Errorf("写入 PDF 文件失败: %w", err)
	}
	log.Printf("共 %d 页，%d 行", len(doc.Pages), doc.LineCount())
	return nil
}

func writeDebug(doc *layout.Document, debugPath string) error {
	if debugPath != "-" {
		if err := os.MkdirAll(filepath.Dir(debugPath), 0o755); err != nil {
			return fmt.Errorf("创建调试目录失败: %w", err)
		}
	}
	if err := layout.WriteDebugJSON(doc, debugPath); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}

func serveCmd(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configPath := fs.String("config", "", "YAML 配置文件路径")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	profile, err := loadProfile(cfg.Profile)
	if err != nil {
		return err
	}
	if cfg.Font != "" {
		profile.Font = cfg.Font
	}
	b, err := renderer.Open(cfg.Renderer, profile.Font)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var gen generate.Generator
	client, err := generate.NewClient(ctx, cfg.Generate.APIKey, cfg.Generate.Model, cfg.Generate.Timeout)
	switch {
	case errors.Is(err, generate.ErrMissingAPIKey):
		log.Printf("未设置 GOOGLE_API_KEY，/generate 不可用")
	case err != nil:
		return err
	default:
		defer client.Close()
		gen = client
	}

	log.Printf("版式 %s: %s, 渲染器 %s", profile.Name, profile.Geometry, cfg.Renderer)
	srv := server.New(server.Options{
		Backend:   b,
		Profile:   profile,
		Generator: gen,
		StaticDir: cfg.StaticDir,
		MaxBody:   cfg.MaxBodyBytes,
	})
	return srv.Run(ctx, cfg.Addr)
}

func loadProfile(path string) (layout.Profile, error) {
	if path == "" {
		return layout.DefaultProfile(), nil
	}
	return layout.LoadProfile(path)
}

func readInput(path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("读取输入失败: %w", err)
	}
	return string(data), nil
}
