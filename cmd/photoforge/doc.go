// Command photoforge is the operator CLI for the photogrammetry toolkit:
// batch mask generation, model reconstruction, and preview rendering.
package main
