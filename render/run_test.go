package render

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"

	"dzr/common"
	"dzr/state"
)

const samplePage = `<html><head><title>t</title></head><body>
<div class="message"><b>hello</b><blockquote>quoted</blockquote>world</div>
</body></html>`

// testContext builds a context carrying a fully initialized environment, the
// way the command line sets it up before dispatching.
func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx := state.ContextWithEnv(context.Background())
	env := state.EnvFromContext(ctx)
	ref := testEnv(t)
	env.Cfg = ref.Cfg
	env.Log = ref.Log
	return ctx
}

func TestProcessSingleFile(t *testing.T) {
	tmpDir := t.TempDir()
	srcPath := filepath.Join(tmpDir, "page1.html")
	if err := os.WriteFile(srcPath, []byte(samplePage), 0644); err != nil {
		t.Fatalf("write source: %v", err)
	}
	dst := filepath.Join(tmpDir, "out")

	ctx := testContext(t)
	if err := process(ctx, srcPath, dst, common.DumpFmtText, zaptest.NewLogger(t)); err != nil {
		t.Fatalf("process() error = %v", err)
	}

	out, err := os.ReadFile(filepath.Join(dst, "page1.txt"))
	if err != nil {
		t.Fatalf("output dump missing: %v", err)
	}
	for _, want := range []string{"Text[bold]", "hello", "quoted", "quote["} {
		if !strings.Contains(string(out), want) {
			t.Errorf("dump missing %q:\n%s", want, out)
		}
	}
}

func TestProcessSingleFileXML(t *testing.T) {
	tmpDir := t.TempDir()
	srcPath := filepath.Join(tmpDir, "page1.html")
	if err := os.WriteFile(srcPath, []byte(samplePage), 0644); err != nil {
		t.Fatalf("write source: %v", err)
	}
	dst := filepath.Join(tmpDir, "out")

	ctx := testContext(t)
	if err := process(ctx, srcPath, dst, common.DumpFmtXml, zaptest.NewLogger(t)); err != nil {
		t.Fatalf("process() error = %v", err)
	}

	out, err := os.ReadFile(filepath.Join(dst, "page1.xml"))
	if err != nil {
		t.Fatalf("output dump missing: %v", err)
	}
	for _, want := range []string{"<runtree", `bold="true"`, "<quote>"} {
		if !strings.Contains(string(out), want) {
			t.Errorf("dump missing %q:\n%s", want, out)
		}
	}
}

func TestProcessRefusesOverwrite(t *testing.T) {
	tmpDir := t.TempDir()
	srcPath := filepath.Join(tmpDir, "page1.html")
	if err := os.WriteFile(srcPath, []byte(samplePage), 0644); err != nil {
		t.Fatalf("write source: %v", err)
	}
	dst := filepath.Join(tmpDir, "out")

	ctx := testContext(t)
	log := zaptest.NewLogger(t)
	if err := process(ctx, srcPath, dst, common.DumpFmtText, log); err != nil {
		t.Fatalf("first run error = %v", err)
	}
	if err := process(ctx, srcPath, dst, common.DumpFmtText, log); err == nil {
		t.Fatal("second run should refuse to overwrite existing output")
	}

	state.EnvFromContext(ctx).Overwrite = true
	if err := process(ctx, srcPath, dst, common.DumpFmtText, log); err != nil {
		t.Fatalf("run with overwrite error = %v", err)
	}
}

func TestProcessDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	srcDir := filepath.Join(tmpDir, "pages")
	if err := os.MkdirAll(filepath.Join(srcDir, "thread"), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	for _, name := range []string{"page1.html", filepath.Join("thread", "page2.html")} {
		if err := os.WriteFile(filepath.Join(srcDir, name), []byte(samplePage), 0644); err != nil {
			t.Fatalf("write source: %v", err)
		}
	}
	// not a page, must be skipped
	if err := os.WriteFile(filepath.Join(srcDir, "notes.txt"), []byte("skip me"), 0644); err != nil {
		t.Fatalf("write source: %v", err)
	}
	dst := filepath.Join(tmpDir, "out")

	ctx := testContext(t)
	if err := process(ctx, srcDir, dst, common.DumpFmtText, zaptest.NewLogger(t)); err != nil {
		t.Fatalf("process() error = %v", err)
	}

	for _, want := range []string{"page1.txt", filepath.Join("thread", "page2.txt")} {
		if _, err := os.Stat(filepath.Join(dst, want)); err != nil {
			t.Errorf("expected output %s: %v", want, err)
		}
	}
	if _, err := os.Stat(filepath.Join(dst, "notes.txt")); err == nil {
		t.Error("non-page input should not produce output")
	}
}

func TestProcessDirectoryNoDirs(t *testing.T) {
	tmpDir := t.TempDir()
	srcDir := filepath.Join(tmpDir, "pages")
	if err := os.MkdirAll(filepath.Join(srcDir, "thread"), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(srcDir, "thread", "page1.html"), []byte(samplePage), 0644); err != nil {
		t.Fatalf("write source: %v", err)
	}
	dst := filepath.Join(tmpDir, "out")

	ctx := testContext(t)
	state.EnvFromContext(ctx).NoDirs = true
	if err := process(ctx, srcDir, dst, common.DumpFmtText, zaptest.NewLogger(t)); err != nil {
		t.Fatalf("process() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dst, "page1.txt")); err != nil {
		t.Errorf("nodirs output should be flat: %v", err)
	}
}

func TestProcessArchive(t *testing.T) {
	tmpDir := t.TempDir()
	arcPath := filepath.Join(tmpDir, "pages.zip")

	f, err := os.Create(arcPath)
	if err != nil {
		t.Fatalf("create archive: %v", err)
	}
	zw := zip.NewWriter(f)
	for _, name := range []string{"page1.html", "inner/page2.html", "readme.txt"} {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("zip create: %v", err)
		}
		if _, err := w.Write([]byte(samplePage)); err != nil {
			t.Fatalf("zip write: %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	f.Close()

	dst := filepath.Join(tmpDir, "out")
	ctx := testContext(t)
	if err := process(ctx, arcPath, dst, common.DumpFmtText, zaptest.NewLogger(t)); err != nil {
		t.Fatalf("process() error = %v", err)
	}

	for _, want := range []string{"page1.txt", filepath.Join("inner", "page2.txt")} {
		if _, err := os.Stat(filepath.Join(dst, want)); err != nil {
			t.Errorf("expected output %s: %v", want, err)
		}
	}
	if _, err := os.Stat(filepath.Join(dst, "readme.txt")); err == nil {
		t.Error("non-page archive entry should not produce output")
	}
}

func TestProcessMissingSource(t *testing.T) {
	ctx := testContext(t)
	if err := process(ctx, "/nonexistent/page.html", t.TempDir(), common.DumpFmtText, zaptest.NewLogger(t)); err == nil {
		t.Fatal("expected error for missing source")
	}
}

func TestProcessRejectsUnknownFile(t *testing.T) {
	tmpDir := t.TempDir()
	srcPath := filepath.Join(tmpDir, "data.bin")
	if err := os.WriteFile(srcPath, []byte{0x00, 0x01, 0x02, 0x03, 0x04}, 0644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	ctx := testContext(t)
	if err := process(ctx, srcPath, tmpDir, common.DumpFmtText, zaptest.NewLogger(t)); err == nil {
		t.Fatal("expected error for unrecognized input")
	}
}
