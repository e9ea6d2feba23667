// Package geometry provides the positioned rectangle used to place text
// boxes and watermarks on an image.
//
// Coordinates follow the image convention: (0,0) is the top-left corner, X
// grows rightward and Y grows downward. Angles are in degrees and positive
// angles rotate counter-clockwise as seen on screen.
//
// A rectangle exposes its four corners by name:
//
//	a ---- b
//	|      |
//	d ---- c
//
// Rotation and translation move the corners but keep their names, so "a" is
// always the corner that started at the top-left.
package geometry
