package wadmesh

// Linedef flag bits
const (
	LineBlocking      = 0x0001 // blocks players and monsters
	LineBlockMonsters = 0x0002
	LineTwoSided      = 0x0004 // backside will not be present at all if not two sided
	LineUpperUnpegged = 0x0008 // upper texture drawn from the top down
	LineLowerUnpegged = 0x0010 // lower texture drawn from the bottom up
	LineSecret        = 0x0020 // shown as one-sided on the automap
	LineBlockSound    = 0x0040
	LineNeverMap      = 0x0080
	LineAlwaysMap     = 0x0100
)

func (l *Linedef) Blocking() bool { return l.Flags&LineBlocking != 0 }
func (l *Linedef) BlockMonsters() bool { return l.Flags&LineBlockMonsters != 0 }
func (l *Linedef) TwoSided() bool { return l.Flags&LineTwoSided != 0 }
func (l *Linedef) UpperUnpegged() bool { return l.Flags&LineUpperUnpegged != 0 }
func (l *Linedef) LowerUnpegged() bool { return l.Flags&LineLowerUnpegged != 0 }
func (l *Linedef) Secret() bool { return l.Flags&LineSecret != 0 }
func (l *Linedef) BlocksSound() bool { return l.Flags&LineBlockSound != 0 }
func (l *Linedef) NeverMap() bool { return l.Flags&LineNeverMap != 0 }
func (l *Linedef) AlwaysMap() bool { return l.Flags&LineAlwaysMap != 0 }
func (l *Linedef) HasFront() bool { return l.Front != NoSide }
func (l *Linedef) HasBack() bool { return l.Back != NoSide }
