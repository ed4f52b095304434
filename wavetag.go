/*
Package wavetag contains the document types of the Wavetag audio annotator: the
decoded Track, the labeled Annotation regions and the JSON file format they are
saved in. The interactive state lives in package tracker and the GUI in
package tracker/gioui.
*/
package wavetag

const (
	// MinSelection is the shortest selection, in seconds, that counts as a
	// playback range or can be stored as an annotation.
	MinSelection = 0.05
	// MinZoomWidth is the narrowest zoom rectangle, in seconds, that is
	// committed; anything narrower is treated as an accidental click.
	MinZoomWidth = 0.001
	// MinSpeed and MaxSpeed bound the playback speed multiplier.
	MinSpeed = 0.1
	MaxSpeed = 2.0
)
