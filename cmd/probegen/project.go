package main

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/probegen/probegen/gcode"
	"github.com/probegen/probegen/probe"
)

// Project is one authoring session on disk: the fixture the programs
// run against, the tool records looked up at construction time, and
// the probing operations themselves.
type Project struct {
	XMLName xml.Name       `xml:"project"`
	Fixture probe.Fixture  `xml:"fixture"`
	Tools   []probe.Tool   `xml:"tools>tool"`
	Probing probe.Document `xml:"probing"`
}

func ReadProject(r io.Reader) (*Project, error) {
	var p Project
	if err := xml.NewDecoder(r).Decode(&p); err != nil {
		return nil, err
	}
	if err := p.Fixture.Validate(); err != nil {
		return nil, fmt.Errorf("fixture: %w", err)
	}
	for i, op := range p.Probing.Ops {
		if err := op.Validate(); err != nil {
			return nil, fmt.Errorf("operation %d (%s): %w", i+1, op.Kind(), err)
		}
	}
	return &p, nil
}

func LoadProject(path string) (*Project, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadProject(f)
}

// ToolTable exposes the project's tool records for depth seeding when
// new operations are added to the project.
func (p *Project) ToolTable() probe.MapToolTable {
	m := make(probe.MapToolTable, len(p.Tools))
	for _, t := range p.Tools {
		m[t.Number] = t
	}
	return m
}

// generateFiles writes one program file per operation into dir.
func generateFiles(log *logrus.Logger, p *Project, dir, ext string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	for _, op := range p.Probing.Ops {
		prog, err := op.Generate(&p.Fixture)
		if err != nil {
			return fmt.Errorf("generate %s: %w", op.Kind(), err)
		}

		name := filepath.Join(dir, op.OutputFileName(ext))
		f, err := os.Create(name)
		if err != nil {
			return err
		}
		_, err = io.Copy(f, gcode.NewBuffer(&gcode.ProgramReader{Program: prog}))
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}

		log.WithFields(logrus.Fields{
			"operation": op.Kind(),
			"file":      name,
		}).Info("program written")
	}
	return nil
}
