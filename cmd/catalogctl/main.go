// Command catalogctl cliente de línea de comandos del árbol de categorías.
// Ejecuta contra la API REST el flujo plan → confirmación → aplicación del cambio de tipo.
package main

import (
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
