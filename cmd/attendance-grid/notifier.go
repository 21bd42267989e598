package main

import (
	"fmt"
	"io"
)

// writerNotifier menampilkan pesan controller sebagai baris teks.
type writerNotifier struct {
	out io.Writer
}

func (n writerNotifier) Info(msg string)  { fmt.Fprintln(n.out, msg) }
func (n writerNotifier) Warn(msg string)  { fmt.Fprintln(n.out, "warning: "+msg) }
func (n writerNotifier) Error(msg string) { fmt.Fprintln(n.out, "error: "+msg) }
