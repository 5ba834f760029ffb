// Package laika multiplexes packet data into the quiet moments of a digital voice transmission.
package laika
