/*
DESCRIPTION
  audioframe is a command-line front end for the demux driver: it reads
  one audio file, demuxes it into frames according to a declared or
  guessed mime family, and prints one summary line per emitted frame.

AUTHOR
  Mara Whitfield <mara@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package audioframe is a command-line front end for the demux driver.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ausocean/audioframe/codec/codecutil"
	"github.com/ausocean/audioframe/container/ogg"
	"github.com/ausocean/audioframe/demux"
	"github.com/ausocean/utils/logging"
)

// Logging configuration.
const (
	logPath      = "audioframe.log"
	logMaxSize   = 50 // MB
	logMaxBackup = 5
	logMaxAge    = 28 // days
	logVerbosity = logging.Info
	logSuppress  = false
)

const pkg = "audioframe: "

func main() {
	mimeFlag := flag.String("mime", "", "mime type override (audio/mpeg, audio/aac, audio/flac, audio/ogg); guessed from the file extension if omitted")
	verbose := flag.Bool("verbose", false, "log parser warnings to stderr in addition to the log file")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: audioframe [-mime type] [-verbose] file")
		os.Exit(2)
	}
	path := flag.Arg(0)

	mime := *mimeFlag
	if mime == "" {
		var err error
		mime, err = guessMime(path)
		if err != nil {
			fmt.Fprintln(os.Stderr, pkg+err.Error())
			os.Exit(1)
		}
	}

	fileLog := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    logMaxSize,
		MaxBackups: logMaxBackup,
		MaxAge:     logMaxAge,
	}
	log := logging.New(logVerbosity, fileLog, logSuppress)

	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatal(pkg + "could not read file: " + err.Error())
	}

	d, err := demux.New(mime,
		demux.WithLogging(*verbose),
		demux.WithOnCodec(func(codec string) {
			log.Info("codec identified", "codec", codec)
		}),
		demux.WithOnCodecUpdate(func(fields codecutil.UpdateFields, timestampMs float64) {
			log.Info("codec parameters changed", "bitrate", fields.Bitrate, "timestampMs", timestampMs)
		}),
	)
	if err != nil {
		log.Fatal(pkg + "could not construct driver: " + err.Error())
	}

	frames, err := d.ParseAll(data)
	if err != nil {
		log.Error(pkg+"parse failed", "error", err.Error())
	}

	for i, f := range frames {
		printFrame(i, f)
	}

	log.Info("done", "codec", d.Codec(), "frames", len(frames))
}

// printFrame writes one summary line per emitted frame. container/ogg
// pages are expanded into one line per nested codec frame they carry.
func printFrame(index int, f codecutil.Frame) {
	if p, ok := f.(*ogg.Page); ok {
		for _, cf := range p.CodecFrames {
			fmt.Printf("%d: %s\n", index, describe(cf))
		}
		return
	}
	fmt.Printf("%d: %s\n", index, describe(f))
}

func describe(f codecutil.Frame) string {
	return fmt.Sprintf("bytesOut=%d samples=%d durationMs=%.2f",
		f.GetTotalBytesOut(), f.GetTotalSamples(), f.GetTotalDuration())
}

// guessMime maps a file extension to a mime family New accepts.
func guessMime(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		return codecutil.MimeMPEG, nil
	case ".aac":
		return codecutil.MimeAAC, nil
	case ".flac":
		return codecutil.MimeFLAC, nil
	case ".ogg", ".oga", ".opus":
		return codecutil.MimeOgg, nil
	default:
		return "", fmt.Errorf("cannot guess mime type for %q, pass -mime", path)
	}
}
