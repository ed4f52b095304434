/*
Package tracker contains the data model for the Wavetag annotator GUI.

The tracker package defines the Model struct, which holds the entire
interactive state: the loaded track, the viewport, the selection and cursor,
the annotation list, the playback state and the interaction mode.

The GUI does not modify the Model data directly, rather, there are types
Action, Bool, Int, String and List which can be used to manipulate the model
data in a controlled way. For example, model.Play().Toggle() returns an Action
to start or pause playback, which can be executed with
model.Play().Toggle().Do().

The various Actions and other data manipulation methods are grouped based on
their functionalities. For example, model.Annotations() groups all the ways to
manipulate the annotation list. Similarly, model.Viewport() groups all the ways
to pan and zoom the waveform.

The model is owned by a single goroutine. Decoding runs in the background and
posts its result to Broker.ToModel; the owner passes received messages to
ProcessMsg and calls Play().Tick every TickInterval while playing.
*/
package tracker
