// Public domain.

package main

import "catmatch/internal/cmprog"

func main() {
	cmprog.Main()
}
