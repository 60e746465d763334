package main

const scriptName = "Old"
const scriptAuthor = "Tests"
const scriptAPIVersion = 0
