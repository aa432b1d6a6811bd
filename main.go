// Package main provides the entry point for the SPICE PWL generator.
package main

import (
	"log"
	"os"

	"fyne.io/fyne/v2/app"

	"pwl-editor/internal/session"
	"pwl-editor/internal/version"
	"pwl-editor/ui/mainwindow"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Starting SPICE PWL Generator %s", version.String())

	fyneApp := app.New()
	sess := session.New()

	win := mainwindow.New(fyneApp, sess)

	// A document path on the command line is loaded into the session before
	// the window shows. A failed load keeps the default waveform.
	if len(os.Args) > 1 {
		path := os.Args[1]
		if err := sess.Load(path); err != nil {
			log.Printf("Failed to load document %s: %v", path, err)
		}
	}

	win.ShowAndRun()
}
