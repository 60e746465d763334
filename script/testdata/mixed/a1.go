package main

const scriptName = "Broken 1"
const scriptAuthor = "Tests"
const scriptAPIVersion = 1

func Init() { undefinedCall() }
