// insight calcula pilares, mensajes diarios, calendarios y compatibilidad
// sin base de datos.
//
// Usage:
//
//	insight pillar 2024-03-02
//	insight compat --a INTJ:2000-01-01 --b ENFP:Water:Yin
//	insight daily --type INTJ --birth 2000-01-01 [--date 2024-03-02]
//	insight calendar --type INTJ --birth 2000-01-01 --month 2024-02 [--months 3]
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
