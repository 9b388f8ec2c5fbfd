package main

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type api struct {
	http.Handler
	log *logrus.Logger
}

func newAPI(log *logrus.Logger) *api {
	r := mux.NewRouter()
	a := &api{Handler: r, log: log}

	r.HandleFunc("/api/generate", a.generate).Methods("POST")
	r.HandleFunc("/api/validate", a.validate).Methods("POST")
	r.Use(a.logRequests)

	return a
}

func (a *api) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		a.log.WithFields(logrus.Fields{
			"method": req.Method,
			"path":   req.URL.Path,
			"remote": req.RemoteAddr,
		}).Debug("request")
		next.ServeHTTP(w, req)
	})
}

type generatedProgram struct {
	Name    string `json:"name"`
	Program string `json:"program"`
}

// generate accepts a project XML body and returns the generated
// program for every operation in it.
func (a *api) generate(w http.ResponseWriter, req *http.Request) {
	p, err := ReadProject(req.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ext := req.URL.Query().Get("ext")
	if ext == "" {
		ext = "ngc"
	}

	res := make([]generatedProgram, 0, len(p.Probing.Ops))
	for _, op := range p.Probing.Ops {
		prog, err := op.Generate(&p.Fixture)
		if err != nil {
			a.log.WithError(err).Error("generate")
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		res = append(res, generatedProgram{
			Name:    op.OutputFileName(ext),
			Program: prog.String(),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(res); err != nil {
		a.log.WithError(err).Error("encode response")
	}
}

type validation struct {
	Errors []string `json:"errors"`
}

// validate accepts a project XML body and reports every validation
// error without generating anything.
func (a *api) validate(w http.ResponseWriter, req *http.Request) {
	res := validation{Errors: []string{}}

	var p Project
	if err := xml.NewDecoder(req.Body).Decode(&p); err != nil {
		res.Errors = append(res.Errors, err.Error())
	} else {
		if err := p.Fixture.Validate(); err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("fixture: %v", err))
		}
		for i, op := range p.Probing.Ops {
			if err := op.Validate(); err != nil {
				res.Errors = append(res.Errors, fmt.Sprintf("operation %d (%s): %v", i+1, op.Kind(), err))
			}
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(res); err != nil {
		a.log.WithError(err).Error("encode response")
	}
}
