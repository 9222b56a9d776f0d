package log

import (
	"fmt"
	"time"
)

// Debug controls whether DEBUG lines are printed at all. Flipped at
// startup from the config; everything else is always on.
var Debug = false

func INFO(f string, a ...any) {
	fmt.Printf("%s [INFO] %s\n", time.Now().Format(time.RFC3339), fmt.Sprintf(f, a...))
}

func WARN(f string, a ...any) {
	fmt.Printf("%s [WARN] %s\n", time.Now().Format(time.RFC3339), fmt.Sprintf(f, a...))
}

func ERR(f string, a ...any) {
	fmt.Printf("%s [ERR] %s\n", time.Now().Format(time.RFC3339), fmt.Sprintf(f, a...))
}

func DEBUG(f string, a ...any) {
	if !Debug { return }
	fmt.Printf("%s [DEBUG] %s\n", time.Now().Format(time.RFC3339), fmt.Sprintf(f, a...))
}
