package main

const scriptName = "Broken 4"
const scriptAuthor = "Tests"
const scriptAPIVersion = 1

func Init() { undefinedCall() }
