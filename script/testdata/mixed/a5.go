package main

const scriptName = "Broken 5"
const scriptAuthor = "Tests"
const scriptAPIVersion = 1

func Init() { undefinedCall() }
