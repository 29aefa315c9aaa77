// Package render drives the conversion of saved forum pages into run tree
// dumps: it discovers inputs, feeds each page through the muncher and writes
// the requested dump format next to the destination.
package render

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/maruel/natural"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/ianaindex"

	"dzr/archive"
	"dzr/common"
	"dzr/css"
	"dzr/discuz"
	"dzr/state"
)

func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("render")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	src, err = filepath.Abs(src)
	if err != nil {
		return err
	}

	dst := cmd.Args().Get(1)
	if len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return err
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	format := env.Cfg.Render.Format
	if to := cmd.String("to"); len(to) > 0 {
		if format, err = common.ParseDumpFmt(to); err != nil {
			log.Warn("Unknown dump format requested, using configured one", zap.Error(err))
			format = env.Cfg.Render.Format
		}
	}

	env.NoDirs, env.Overwrite = cmd.Bool("nodirs"), cmd.Bool("overwrite")

	// Old saved pages frequently lie about their encoding or have none at
	// all; allow forcing a specific code page for all inputs
	cp := cmd.String("force-encoding")
	if len(cp) > 0 {
		env.CodePage, err = ianaindex.IANA.Encoding(cp)
		if err != nil {
			log.Warn("Unknown character set specification. Ignoring...", zap.String("charset", cp), zap.Error(err))
			env.CodePage = nil
		} else {
			n, _ := ianaindex.IANA.Name(env.CodePage)
			log.Debug("Forcefully decoding all inputs", zap.String("charset", n))
		}
	}

	log.Info("Processing starting", zap.String("source", src), zap.String("destination", dst), zap.Stringer("format", format))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return process(ctx, src, dst, format, log)
}

// process handles the core conversion logic independently of CLI framework. It
// determines the input type (directory, archive, or single file) and processes
// accordingly.
func process(ctx context.Context, src, dst string, format common.DumpFmt, log *zap.Logger) error {
	fi, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("input source was not found (%s): %w", src, err)
	}

	if fi.Mode().IsDir() {
		return processDir(ctx, src, dst, format, log)
	}
	if !fi.Mode().IsRegular() {
		return fmt.Errorf("unexpected path mode for (%s)", src)
	}

	isArc, err := isArchiveFile(src)
	if err != nil {
		return fmt.Errorf("unable to check archive type: %w", err)
	}
	if isArc {
		return processArchive(ctx, src, dst, format, log)
	}

	if !isMarkupFile(src) {
		return fmt.Errorf("input was not recognized as saved forum page (%s)", src)
	}

	file, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("unable to open input file: %w", err)
	}
	defer file.Close()
	return processPage(ctx, file, filepath.Base(src), dst, format, log)
}

// processDir walks directory tree finding saved pages and processes them in
// natural order, so "page2" sorts before "page10".
func processDir(ctx context.Context, dir, dst string, format common.DumpFmt, log *zap.Logger) error {
	var pages, archives []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err != nil {
			log.Warn("Skipping path", zap.String("path", path), zap.Error(err))
			return nil
		}
		if !info.Mode().IsRegular() {
			return nil
		}

		if isArc, err := isArchiveFile(path); err != nil {
			log.Warn("Skipping file", zap.String("file", path), zap.Error(err))
			return nil
		} else if isArc {
			archives = append(archives, path)
			return nil
		}

		if !isMarkupFile(path) {
			log.Debug("Skipping file, not recognized as page or archive", zap.String("file", path))
			return nil
		}
		pages = append(pages, path)
		return nil
	})
	if err != nil {
		return err
	}
	if len(pages) == 0 && len(archives) == 0 {
		log.Debug("Nothing to process", zap.String("dir", dir))
		return nil
	}

	slices.SortFunc(pages, func(a, b string) int {
		if natural.Less(a, b) {
			return -1
		} else if natural.Less(b, a) {
			return 1
		}
		return 0
	})

	for _, path := range pages {
		if err := ctx.Err(); err != nil {
			return err
		}
		file, err := os.Open(path)
		if err != nil {
			log.Error("Unable to process file", zap.String("file", path), zap.Error(err))
			continue
		}
		src := strings.TrimPrefix(strings.TrimPrefix(path, dir), string(filepath.Separator))
		if err := processPage(ctx, file, src, dst, format, log); err != nil {
			log.Error("Unable to process file", zap.String("file", path), zap.Error(err))
		}
		file.Close()
	}
	for _, path := range archives {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := processArchive(ctx, path, dst, format, log); err != nil {
			log.Error("Unable to process archive", zap.String("file", path), zap.Error(err))
		}
	}
	return nil
}

// processArchive walks all files inside a zip archive of saved pages and
// processes the ones recognized as markup.
func processArchive(ctx context.Context, path, dst string, format common.DumpFmt, log *zap.Logger) (err error) {
	count := 0
	defer func() {
		if err == nil && count == 0 {
			log.Debug("Nothing to process", zap.String("archive", path))
		}
	}()

	err = archive.Walk(path, "", func(arc string, f *zip.File) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !isMarkupFile(f.FileHeader.Name) {
			log.Debug("Skipping file, not recognized as page", zap.String("archive", arc), zap.String("file", f.FileHeader.Name))
			return nil
		}

		count++

		r, err := f.Open()
		if err != nil {
			log.Error("Unable to process file in archive",
				zap.String("archive", arc), zap.String("file", f.FileHeader.Name), zap.Error(err))
			return nil
		}
		defer r.Close()

		if err := processPage(ctx, r, f.FileHeader.Name, dst, format, log); err != nil {
			log.Error("Unable to process file in archive",
				zap.String("archive", arc), zap.String("file", f.FileHeader.Name), zap.Error(err))
		}
		return nil
	})
	return err
}

// processPage converts a single saved page. "src" is the source path relative
// to the original input (just the base name when a single file was given),
// "dst" is the destination directory for the dump.
func processPage(ctx context.Context, r io.Reader, src string, dst string, format common.DumpFmt, log *zap.Logger) (rerr error) {
	env := state.EnvFromContext(ctx)

	refID := uuid.NewString()
	var outputName string

	log.Info("Conversion starting", zap.String("from", src), zap.String("ref_id", refID))
	defer func(start time.Time) {
		// stored markup is hostile enough that we do not want one bad page to
		// stop a batch
		if r := recover(); r != nil {
			log.Error("Conversion ended with panic",
				zap.Any("panic", r), zap.Duration("elapsed", time.Since(start)), zap.String("to", outputName), zap.ByteString("stack", debug.Stack()))
			rerr = fmt.Errorf("conversion panic: %v", r)
		} else {
			log.Info("Conversion completed", zap.Duration("elapsed", time.Since(start)), zap.String("to", outputName))
		}
	}(time.Now())

	var cr io.Reader
	if env.CodePage != nil {
		cr = env.CodePage.NewDecoder().Reader(r)
	} else {
		var err error
		if cr, err = charset.NewReader(r, "text/html"); err != nil {
			return fmt.Errorf("unable to determine page encoding (%s): %w", src, err)
		}
	}

	doc, err := html.Parse(cr)
	if err != nil {
		return fmt.Errorf("unable to parse page (%s): %w", src, err)
	}

	tree := discuz.NewMuncher(log).Munch(conversionRoot(doc))

	outputName = buildOutputPath(src, dst, refID, format, env)

	// Check if output file already exists
	if _, err := os.Stat(outputName); err == nil {
		if !env.Overwrite {
			return fmt.Errorf("output file already exists: %s", outputName)
		}
		log.Warn("Overwriting existing file", zap.String("file", outputName))
		if err = os.Remove(outputName); err != nil {
			return err
		}
	} else if !os.IsNotExist(err) {
		return err
	} else if err := os.MkdirAll(filepath.Dir(outputName), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}

	var data []byte
	switch format {
	case common.DumpFmtText:
		data = []byte(tree.String())
	case common.DumpFmtXml:
		if data, err = discuz.EncodeXML(tree, themeFromConfig(env, log)).WriteToBytes(); err != nil {
			return fmt.Errorf("unable to serialize run tree: %w", err)
		}
	}
	if err := os.WriteFile(outputName, data, 0644); err != nil {
		return fmt.Errorf("unable to write output: %w", err)
	}

	// Store conversion result for debugging
	if env.Rpt != nil {
		env.Rpt.Store(fmt.Sprintf("result-%s%s", refID, filepath.Ext(outputName)), outputName)
	}

	return nil
}

// conversionRoot locates the body element of a parsed page; the parser always
// synthesizes one but we keep the document fallback anyway.
func conversionRoot(doc *html.Node) *html.Node {
	var body *html.Node
	var find func(*html.Node)
	find = func(n *html.Node) {
		if body != nil {
			return
		}
		if n.Type == html.ElementNode && n.Data == "body" {
			body = n
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			find(c)
		}
	}
	find(doc)
	if body == nil {
		return doc
	}
	return body
}

func themeFromConfig(env *state.LocalEnv, log *zap.Logger) discuz.Theme {
	theme := discuz.Theme{
		BaseFontSize: css.Size(env.Cfg.Render.BaseFontSize),
		BaseColor:    css.Color(0xff000000),
	}
	if c, ok := css.ParseColor(env.Cfg.Render.BaseColor); ok {
		theme.BaseColor = c
	} else {
		log.Warn("Unable to resolve configured base color, using black", zap.String("color", env.Cfg.Render.BaseColor))
	}
	return theme
}
