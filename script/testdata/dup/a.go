package main

const scriptName = "Same"
const scriptAuthor = "Tests"
const scriptAPIVersion = 1
