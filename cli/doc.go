// Package cli implements the sprenza command line client of the attendance API.
//
// Flags override values from an optional yaml config file:
//
//	baseURL: https://api.example.com/api/v1
//	timeout: 30s
//	store:
//	  kind: secure
//	  url: ~/.config/sprenza/credentials.enc
//	  key: blowfish://default
//	log:
//	  level: info
//
// Example:
//
//	sprenza -c config.yaml login -e asha@example.com
//	sprenza -c config.yaml verify -e asha@example.com -o 123456
//	sprenza -c config.yaml punch-in --lat 12.97 --lng 77.59 -a "MG Road" -i selfie.jpg
package cli
