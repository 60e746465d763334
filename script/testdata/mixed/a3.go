package main

const scriptName = "Broken 3"
const scriptAuthor = "Tests"
const scriptAPIVersion = 1

func Init() { undefinedCall() }
