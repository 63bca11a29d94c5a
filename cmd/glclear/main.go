package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/friedelschoen/glclear"
	"github.com/friedelschoen/glclear/glwin"
	"github.com/friedelschoen/glclear/sdlwin"
	"github.com/friedelschoen/glclear/shmwin"
)

func main() {
	opts := glclear.DefaultOptions()

	backend := flag.String("backend", "egl", "presentation backend: egl, sdl or shm")
	title := flag.String("title", opts.Title, "window title")
	appID := flag.String("app-id", opts.AppID, "application id reported to the compositor")
	clear := flag.String("color", "blue", "clear color, a name or #rgb/#rrggbb[aa] hex value")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	opts.Title = *title
	opts.AppID = *appID

	var err error
	opts.Clear, err = glclear.ParseColor(*clear)
	if err != nil {
		log.Fatal("invalid clear color", "color", *clear, "err", err)
	}

	switch *backend {
	case "egl":
		err = glwin.Run(opts)
	case "sdl":
		err = sdlwin.Run(opts)
	case "shm":
		err = shmwin.Run(opts)
	default:
		fmt.Fprintf(os.Stderr, "unknown backend %q, expected egl, sdl or shm\n", *backend)
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatal("window exited", "backend", *backend, "err", err)
	}
}
