package opcode

import "sync"

// platypusOps is the event table of the 2002 release of Platypus, in the
// order the game declares it. Gaps in the code sequence are opcodes the game
// never uses in its maps.
var platypusOps = []Operation{
	{0x01, "randSaucers", []string{"saucers", "firing_chance"}},
	{0x02, "setBonusCounter", []string{"bonus", "value"}},
	{0x03, "setBonusStar", []string{"bonus", "type"}},
	{0x04, "redSaucer1", []string{"bonus", "y", "x"}},
	{0x05, "redBigUn", []string{"y", "_unknown"}},
	{0x06, "greenBigUn", []string{"y", "_unknown"}},
	{0x07, "sayLevel", nil},
	{0x08, "sayArea", nil},
	{0x09, "destroyText", nil},
	{0x0A, "blackFish", []string{"bonus", "x", "y", "script"}},
	{0x0B, "orangeFish", []string{"bonus", "x", "y", "script"}},
	{0x0C, "skipIfOne", []string{"places"}},
	{0x0D, "forceBackground", []string{"layer", "tile"}},
	{0x0F, "toggle_firing", []string{"disabled"}},
	{0x10, "sayPrims", nil},
	{0x11, "saySecs", nil},
	{0x12, "sayTotal", nil},
	{0x14, "sayEvaluation", nil},
	{0x15, "sayBonus", nil},
	{0x16, "giveBonus", nil},
	{0x17, "setHighRand", []string{"value"}},
	{0x18, "setLowRand", []string{"value"}},
	{0x19, "countBonus", nil},
	{0x1A, "returnCounter1", nil},
	{0x1B, "returnCounter2", nil},
	{0x1C, "setLowFront", []string{"value"}},
	{0x1D, "setHighFront", []string{"value"}},
	{0x1E, "saucer", []string{"x", "y", "firing_chance"}},
	{0x21, "make_birds", []string{"number"}},
	{0x22, "back_redBigUn", []string{"y"}},
	{0x23, "pylons", nil},
	{0x24, "back_greenBigUn", []string{"y"}},
	{0x25, "randFish", []string{"firing_chance"}},
	{0x26, "squid", []string{"x", "y", "focus_y", "_unknown"}},
	{0x27, "gunship", []string{"y"}},
	{0x28, "bigSquid", []string{"x", "y", "focus_y", "_unknown"}},
	{0x29, "ray", nil},
	{0x2A, "setFishFire", []string{"enabled"}},
	{0x2B, "blimp", []string{"y", "message"}},
	{0x2C, "special_for_no_explode", nil},
	{0x2D, "skip_if_no_special", []string{"places"}},
	{0x2E, "balloon", []string{"x", "y", "bonus_type"}},
	{0x2F, "moon", []string{"x", "y", "x_velocity", "y_velocity", "sprite", "in_front"}},
	{0x30, "tanks_n_building", []string{"tanks", "item"}},
	{0x31, "goldfish", []string{"x", "y", "_unknown"}},
	{0x32, "wait_for_no_enemies", nil},
	{0x33, "make_waterfall", []string{"layer"}},
	{0x34, "_unknown34", []string{"_unknown"}}, // never placed in a shipped map
	{0x35, "make_mounted_guns", []string{"pattern"}},
	{0x36, "set_hillpop", []string{"layer"}},
	{0x37, "wait_hillpop", []string{"layer"}},
	{0x38, "make_train", []string{"carriage"}},
	{0x39, "load_cars", nil},
	{0x3A, "unload_cars", nil},
	{0x3C, "say_level_over", nil},
	{0x3D, "say_bonus_credit", nil},
	{0x3E, "give_bonus_credit", nil},
	{0x3F, "bomb", []string{"x", "y", "x_velocity", "y_velocity", "string_length", "deadly", "bonus"}},
	{0x40, "set_ray", []string{"x", "y", "direction", "_unknown"}},
	{0x41, "block_layer", []string{"layer"}}, // never placed in a shipped map
	{0x42, "unblock_layer", []string{"layer"}},
	{0x43, "distant_boat", []string{"y"}},
	{0x44, "distant_island", []string{"y"}},
	{0x45, "homing_ship", []string{"y"}},
	{0x46, "back_bomb", []string{"x", "y", "x_velocity", "y_velocity", "layer"}},
	{0x47, "flip_plane", []string{"y"}},
	{0x48, "bigPlane", nil},
	{0x49, "back_boss2", nil},
	{0x4A, "eruption", nil},
	{0x4B, "parrots", []string{"number"}},
	{0x4C, "fast_ship", []string{"bonus"}},
	{0x4E, "missile_boat", nil},
	{0x4F, "cannon_boat", nil},
	{0x50, "cargo_boat", []string{"_unknown"}},
	{0x51, "_unknown51", []string{"x", "y", "focus_y", "_unknown"}}, // never placed in a shipped map
	{0x52, "sub", nil},
	{0x53, "laser_squid", []string{"x", "y", "focus_y", "_unknown"}},
	{0x54, "last_boss", nil},
	{0x55, "say_bonus_250000", nil},
	{0x56, "bonus_credits", nil},
	{0x57, "give_end_bonus", nil},
	{0x58, "convert_counter", nil},
	{0x59, "say_mission_over", nil},
	{0x5A, "returncounter3", nil},
	{0x5B, "kill_game", nil},
	{0x5C, "the_end", nil},
	{0x5D, "music_fade", nil},
	{0x5E, "baddie_tune", []string{"tune"}},
	{0x64, "nufzenuf", nil},
	{0x151F04BD, "noEruption", nil},
	{0x23A15D71, "end_level", nil},
	{0x9E051FB8, "next_level", nil},
}

var (
	platypusOnce  sync.Once
	platypusTable *Table
)

// Platypus returns the builtin table. It is built once and shared by every caller.
func Platypus() *Table {
	platypusOnce.Do(func() {
		platypusTable = MustTable(platypusOps)
	})
	return platypusTable
}
