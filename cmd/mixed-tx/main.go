/* Transmit mixed voice and data frames */
package main

import (
	laika "github.com/doismellburning/laika/src"
)

func main() {
	laika.MixedTXMain()
}
