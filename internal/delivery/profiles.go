package delivery

import "strings"

// Profile is a named social media output preset.
type Profile struct {
	Name        string
	Width       int
	Height      int
	AspectRatio string
}

// Profiles is the fixed set of social presets, in display order.
var Profiles = []Profile{
	{Name: "Instagram Square (1:1)", Width: 1080, Height: 1080, AspectRatio: "1:1"},
	{Name: "Instagram Portrait (4:5)", Width: 1080, Height: 1350, AspectRatio: "4:5"},
	{Name: "Twitter Post (16:9)", Width: 1200, Height: 675, AspectRatio: "16:9"},
	{Name: "Twitter Header (3:1)", Width: 1500, Height: 500, AspectRatio: "3:1"},
	{Name: "Facebook Cover (205:78)", Width: 820, Height: 312, AspectRatio: "205:78"},
}

// DefaultProfile is selected when a transform session starts.
func DefaultProfile() Profile {
	return Profiles[0]
}

// ProfileByName looks a preset up by its display name.
func ProfileByName(name string) (Profile, bool) {
	for _, p := range Profiles {
		if p.Name == name {
			return p, true
		}
	}
	return Profile{}, false
}

// DownloadFileName is the suggested save name for a rendered profile,
// lowercased with spaces replaced by underscores.
func (p Profile) DownloadFileName() string {
	return strings.ToLower(strings.ReplaceAll(p.Name, " ", "_")) + ".png"
}
