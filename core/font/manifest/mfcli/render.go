package main

import (
	"flag"
	"fmt"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/multiscript/core"
	"github.com/npillmayer/multiscript/core/font"
	"github.com/npillmayer/multiscript/core/locate/resources"
	"github.com/npillmayer/multiscript/core/script"
	"github.com/npillmayer/multiscript/engine/textprep"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/pterm/pterm"
	"golang.org/x/text/language/display"
)

func render(conf testconfig.Conf, args []string) error {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	mfile := fs.String("manifest", "", "manifest file")
	bold := fs.Bool("bold", false, "render in bold style")
	fs.Parse(args)
	if fs.NArg() == 0 {
		return core.Error(core.EINVALID, "render needs a text")
	}
	p := pipeline(conf, *mfile)
	style := font.Regular
	if *bold {
		style = font.Bold
	}
	return renderText(p, strings.Join(fs.Args(), " "), style)
}

func shell(conf testconfig.Conf, args []string) error {
	fs := flag.NewFlagSet("shell", flag.ExitOnError)
	mfile := fs.String("manifest", "", "manifest file")
	fs.Parse(args)
	p := pipeline(conf, *mfile)
	repl, err := readline.New("render > ")
	if err != nil {
		return core.WrapError(err, core.EINTERNAL, "cannot start shell")
	}
	defer repl.Close()
	pterm.Info.Println("Quit with <ctrl>D") // inform user how to stop the CLI
	for {
		line, err := repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		if err = renderText(p, line, font.Regular); err != nil {
			pterm.Error.Println(core.UserError(err))
		}
	}
	pterm.Info.Println("Good bye!")
	return nil
}

// pipeline creates a text pipeline for a manifest. If the manifest cannot be
// loaded, the pipeline runs with the fallback font only.
func pipeline(conf testconfig.Conf, mfile string) *textprep.Pipeline {
	m, err := loadManifest(conf, mfile)
	if err != nil {
		if isMissing(err) {
			pterm.Warning.Println("no font manifest, using fallback font only")
		} else {
			pterm.Warning.Println(core.UserMessage(err))
		}
		m = nil
	}
	return textprep.WithResolver(resources.NewResolver(m, conf))
}

func renderText(p *textprep.Pipeline, text string, style font.Style) error {
	prep, err := p.Prepare(text, style)
	if len(prep.Fixes) > 0 {
		data := pterm.TableData{{"Fix", "Position", "Original", "Replacement"}}
		for _, fix := range prep.Fixes {
			data = append(data, []string{fix.Kind.String(), fmt.Sprintf("%d", fix.Position),
				fmt.Sprintf("%+q", fix.Original), fmt.Sprintf("%+q", fix.Replacement)})
		}
		pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	}
	if err != nil {
		return err
	}
	probes, err := p.Probe(prep.Runs)
	if err != nil {
		return err
	}
	data := pterm.TableData{{"Script", "Offsets", "Text", "Family", "Style", "Missing"}}
	for i, probe := range probes {
		seg := prep.Segments[i]
		missing := fmt.Sprintf("%d", probe.Missing)
		if probe.Missing > 0 {
			missing += fmt.Sprintf(" %+q", string(probe.MissingRunes))
		}
		data = append(data, []string{scriptName(seg.Script), fmt.Sprintf("%d-%d", seg.Start, seg.End),
			fmt.Sprintf("%q", probe.Run.Text), probe.Run.Family, probe.Run.Style.String(), missing})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

// scriptName returns a tag together with the English name of its ISO 15924
// script, if the two differ.
func scriptName(tag script.Tag) string {
	name := display.English.Scripts().Name(tag.ISO15924())
	if name == "" || name == tag.String() {
		return tag.String()
	}
	return fmt.Sprintf("%s (%s)", tag, name)
}
