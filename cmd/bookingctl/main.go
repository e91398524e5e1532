package main

import "booking-platform/cmd/bookingctl/commands"

func main() {
	commands.Execute()
}
