/*
Command mfcli manages font manifests and probes text preparation.

Usage:

   mfcli [-trace level] <command> [flags] [args]

Commands:

   build  -root DIR [-out FILE]              scan a font root, write a manifest
   verify [-manifest FILE]                   re-hash all fonts of a manifest
   list   [-manifest FILE] [-prefix P]       list families and fonts
   render [-manifest FILE] [-bold] TEXT      show fixes, segments, runs and missing glyphs
   shell  [-manifest FILE]                   render lines interactively
   locate NAME                               find an installed system font
   import -root DIR -family F [-style S] NAME   copy a system font into a font root

If no manifest is given, the manifest is taken from the user's config
directory.
*/
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/flopp/go-findfont"
	"github.com/npillmayer/multiscript/core"
	"github.com/npillmayer/multiscript/core/font"
	"github.com/npillmayer/multiscript/core/font/manifest"
	"github.com/npillmayer/multiscript/core/locate/resources"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
)

// tracer traces with key 'multiscript.manifest'
func tracer() tracing.Trace {
	return tracing.Select("multiscript.manifest")
}

const appKey = "multiscript"

var tracingKeys = []string{
	"multiscript.manifest",
	"multiscript.fonts",
	"multiscript.resources",
	"multiscript.sanitize",
	"multiscript.segment",
	"multiscript.glyphs",
	"multiscript.textprep",
}

func main() {
	initDisplay()
	tlevel := flag.String("trace", "Error", "Trace level [Debug|Info|Error]")
	flag.Usage = usage
	flag.Parse()
	//
	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter": "go",
		"app-key":         appKey,
	}
	for _, key := range tracingKeys {
		conf["trace."+key] = *tlevel
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())
	tracer().Infof("Trace level is %s", *tlevel)
	//
	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}
	cmd, args := flag.Arg(0), flag.Args()[1:]
	var err error
	switch cmd {
	case "build":
		err = build(args)
	case "verify":
		err = verify(conf, args)
	case "list":
		err = list(conf, args)
	case "render":
		err = render(conf, args)
	case "shell":
		err = shell(conf, args)
	case "locate":
		err = locate(args)
	case "import":
		err = importFont(args)
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		pterm.Error.Println(core.UserError(err))
		tracer().Errorf("%v", err)
		os.Exit(exitCode(err))
	}
}

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(),
		"usage: mfcli [-trace level] build|verify|list|render|shell|locate|import [flags] [args]\n")
	flag.PrintDefaults()
}

func exitCode(err error) int {
	switch core.Code(err) {
	case core.EINTEGRITY:
		return 3
	case core.EBUILD:
		return 4
	case core.EMISSING:
		return 5
	}
	return 1
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// --- Commands --------------------------------------------------------------

func build(args []string) error {
	fs := flag.NewFlagSet("build", flag.ExitOnError)
	root := fs.String("root", "", "font root directory")
	out := fs.String("out", "", "manifest file (default <root>/"+manifest.DefaultFilename+")")
	fs.Parse(args)
	if *root == "" {
		return core.Error(core.EINVALID, "build needs a font root (-root)")
	}
	if *out == "" {
		*out = *root + string(os.PathSeparator) + manifest.DefaultFilename
	}
	m, err := manifest.Build(*root)
	if err != nil {
		return err
	}
	if err = m.Save(*out); err != nil {
		return err
	}
	printEntries(m, m.Entries)
	pterm.Success.Printfln("manifest with %d fonts written to %s", len(m.Entries), *out)
	return nil
}

func verify(conf testconfig.Conf, args []string) error {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	mfile := fs.String("manifest", "", "manifest file")
	fs.Parse(args)
	m, err := loadManifest(conf, *mfile)
	if err != nil {
		return err
	}
	report, err := manifest.Verify(m)
	if len(report.Mismatches) > 0 {
		data := pterm.TableData{{"Family", "Style", "Path", "Problem"}}
		for _, mm := range report.Mismatches {
			data = append(data, []string{mm.Entry.Family, mm.Entry.Style.String(),
				mm.Path, mm.Kind.String()})
		}
		pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	}
	if err != nil {
		return err
	}
	pterm.Success.Printfln("%d font files match the manifest", report.Checked)
	return nil
}

func list(conf testconfig.Conf, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	mfile := fs.String("manifest", "", "manifest file")
	prefix := fs.String("prefix", "", "list only families starting with prefix")
	fs.Parse(args)
	m, err := loadManifest(conf, *mfile)
	if err != nil {
		return err
	}
	var entries []manifest.Entry
	for _, family := range m.FamiliesWithPrefix(*prefix) {
		for _, e := range m.Entries {
			if e.Family == family {
				entries = append(entries, e)
			}
		}
	}
	printEntries(m, entries)
	pterm.Info.Printfln("manifest generated at %s", m.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
	return nil
}

func locate(args []string) error {
	if len(args) != 1 {
		return core.Error(core.EINVALID, "locate needs exactly one font name")
	}
	fpath, err := findfont.Find(args[0])
	if err != nil {
		return core.WrapError(err, core.EMISSING, "system font %s not found", args[0])
	}
	pterm.Info.Println(fpath)
	return nil
}

func importFont(args []string) error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	root := fs.String("root", "", "font root directory")
	family := fs.String("family", "", "family to import the font as (default: the font's family name)")
	style := fs.String("style", "Regular", "style to import the font as [Regular|Bold]")
	fs.Parse(args)
	if *root == "" || fs.NArg() != 1 {
		return core.Error(core.EINVALID, "import needs -root and a font name")
	}
	st, err := font.ParseStyle(*style)
	if err != nil {
		return core.WrapError(err, core.EINVALID, "invalid style %q", *style)
	}
	dest, err := manifest.ImportSystemFont(*root, fs.Arg(0), *family, st)
	if err != nil {
		return err
	}
	pterm.Success.Printfln("imported as %s; rebuild the manifest to use it", dest)
	return nil
}

// --- Helpers ---------------------------------------------------------------

func loadManifest(conf testconfig.Conf, mfile string) (*manifest.Manifest, error) {
	if mfile != "" {
		conf["fonts.manifest"] = mfile
	}
	path, err := resources.DefaultManifestPath(conf)
	if err != nil {
		return nil, err
	}
	tracer().Infof("using manifest %s", path)
	return manifest.Load(path)
}

func printEntries(m *manifest.Manifest, entries []manifest.Entry) {
	if len(entries) == 0 {
		pterm.Warning.Printfln("no fonts in %s", m.Root())
		return
	}
	pterm.Info.Printfln("font root %s", m.Root())
	data := pterm.TableData{{"Family", "Style", "Path", "Size", "Scripts"}}
	for _, e := range entries {
		scripts := make([]string, len(e.ScriptCoverage))
		for i, tag := range e.ScriptCoverage {
			scripts[i] = tag.String()
		}
		data = append(data, []string{e.Family, e.Style.String(), e.RelativePath,
			fmt.Sprintf("%d", e.SizeBytes), strings.Join(scripts, " ")})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		tracer().Errorf("cannot print table: %v", err)
	}
}

func isMissing(err error) bool {
	return errors.Is(err, manifest.ErrManifestMissing)
}
