package main

const scriptName = "Twin"
const scriptAuthor = "Tests"
const scriptAPIVersion = 1
