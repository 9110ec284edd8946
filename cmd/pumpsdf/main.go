// Command pumpsdf builds, inspects and exports the parametric feed pump.
package main

func main() {
	Execute()
}
