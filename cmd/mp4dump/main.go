// Command mp4dump prints the box structure of MP4 and other ISO base media
// files.
package main

func main() {
	execute()
}
