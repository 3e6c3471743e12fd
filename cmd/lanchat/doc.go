// Package `lanchat` implements a text chat for trusted local networks
// over TCP: one binary for both roles.
//
// Start the relay on one machine:
//
//	lanchat -i
//
// It prints the address other machines join with:
//
//	lanchat -s <address> -p <pseudonym>
//
// Without -p the client prompts for a pseudonym before connecting.
package main
