package main

const scriptName = "Broken 2"
const scriptAuthor = "Tests"
const scriptAPIVersion = 1

func Init() { undefinedCall() }
