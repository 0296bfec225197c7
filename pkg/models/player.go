package models

// Player is a member of the club squad.
type Player struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	KitNumber    int    `json:"kitNumber"`
	Role         string `json:"role"`
	Age          int    `json:"age"`
	About        string `json:"about"`
	Picture      *Asset `json:"picture,omitempty"`
	Matches      int    `json:"matches"`
	Runs         int    `json:"runs"`
	Wickets      int    `json:"wickets"`
	Captain      bool   `json:"captain"`
	ViceCaptain  bool   `json:"vicecaptain"`
	WicketKeeper bool   `json:"wicketkeeper"`
	President    bool   `json:"president"`
}

// RoleBadge is a short marker shown on a player card.
type RoleBadge struct {
	Label string
	Title string
	Class string
}

// Badges lists the player's role markers. The flags are independent.
func (p Player) Badges() []RoleBadge {
	var badges []RoleBadge
	if p.Captain {
		badges = append(badges, RoleBadge{Label: "C", Title: "Captain", Class: "badge-captain"})
	}
	if p.ViceCaptain {
		badges = append(badges, RoleBadge{Label: "VC", Title: "Vice Captain", Class: "badge-vice"})
	}
	if p.WicketKeeper {
		badges = append(badges, RoleBadge{Label: "WK", Title: "Wicket Keeper", Class: "badge-keeper"})
	}
	if p.President {
		badges = append(badges, RoleBadge{Label: "P", Title: "President", Class: "badge-president"})
	}
	return badges
}

// Photo is the picture when it can be shown as an image, nil otherwise.
func (p Player) Photo() *Asset {
	if !p.Picture.IsImage() {
		return nil
	}
	return p.Picture
}

// Initial is the first letter of the name, shown when there is no picture.
func (p Player) Initial() string {
	for _, r := range p.Name {
		return string(r)
	}
	return "?"
}

func PlayerFromEntry(e Entry) Player {
	f := e.Fields
	return Player{
		ID:           e.Sys.ID,
		Name:         f.Text("name"),
		KitNumber:    f.Int("kitNumber"),
		Role:         f.Text("role"),
		Age:          f.Int("age"),
		About:        f.Text("about"),
		Picture:      f.Asset("picture"),
		Matches:      f.Int("matches"),
		Runs:         f.Int("runs"),
		Wickets:      f.Int("wickets"),
		Captain:      f.Bool("captain"),
		ViceCaptain:  f.Bool("vicecaptain"),
		WicketKeeper: f.Bool("wicketkeeper"),
		President:    f.Bool("president"),
	}
}
