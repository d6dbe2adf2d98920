//go:build windows

package main

import "os"

// notifyResize is a no-op on Windows; the console has no SIGWINCH
// equivalent delivered as a signal.
func notifyResize(ch chan<- os.Signal) {}
