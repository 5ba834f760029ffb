/* Print the Es/No estimate for a file of received symbols */
package main

import (
	laika "github.com/doismellburning/laika/src"
)

func main() {
	laika.EsnoEstMain()
}
