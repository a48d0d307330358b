package main

import "cheeseblog/service"

func main() {
	service.Execute()
}
