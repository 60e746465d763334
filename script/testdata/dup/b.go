package main

const scriptName = "same"
const scriptAuthor = "Tests"
const scriptAPIVersion = 1
