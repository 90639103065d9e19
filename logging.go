package main

import (
	"log"
	"os"
)

// debugEnabled is set from PHOTOVIEW_DEBUG at startup
var debugEnabled = os.Getenv("PHOTOVIEW_DEBUG") != ""

// debugLog prints only when debug output is enabled
func debugLog(format string, args ...interface{}) {
	if debugEnabled {
		log.Printf("Debug: "+format, args...)
	}
}
