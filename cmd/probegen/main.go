package main

import (
	"flag"
	"net/http"

	"github.com/sirupsen/logrus"
)

func main() {
	cfg := LoadConfig()

	project := flag.String("project", "project.xml", "Path to the project XML file.")
	out := flag.String("out", cfg.OutDir, "Directory to write generated programs to.")
	ext := flag.String("ext", cfg.Ext, "File extension for generated programs.")
	addr := flag.String("addr", cfg.Addr, "Address to serve the HTTP API on. Empty generates files and exits.")
	level := flag.String("log-level", cfg.LogLevel, "Log level: debug, info, warn, error.")
	flag.Parse()

	log := logrus.New()
	if lvl, err := logrus.ParseLevel(*level); err == nil {
		log.SetLevel(lvl)
	} else {
		log.WithField("level", *level).Warn("unknown log level, using info")
	}

	if *addr != "" {
		log.WithField("addr", *addr).Info("serving probing API")
		log.Fatal(http.ListenAndServe(*addr, newAPI(log)))
	}

	p, err := LoadProject(*project)
	if err != nil {
		log.WithError(err).Fatal("load project")
	}
	if err := generateFiles(log, p, *out, *ext); err != nil {
		log.WithError(err).Fatal("generate programs")
	}
}
