package powerio

// DefaultColumns is the stock header of a power table, used when saving a list that has no
// column shape of its own.
var DefaultColumns = []string{
	"PowerName", "PowerID", "OrderID", "DevNotes", "MissionTags", "Priority", "CastSoundEvent",
	"HitSoundEvent", "ItemHitSoundEvent", "TargetMethod", "ParentItem", "OriginPower",
	"IsAirPower", "IsSignature", "IsAntiair", "SigModeSwapsMove", "AoERadiusX", "AoERadiusY",
	"CenterOffsetX", "CenterOffsetY", "CastImpulseX", "CastImpulseY", "FireImpulseX",
	"FireImpulseY", "FireImpulseMaxX", "ImpulseMaxOnDCOnly", "SpeedLimit", "SpeedLimitY",
	"SpeedLimitAttack", "SpeedLimitBackward", "SpeedLimitAttackBackward", "SelfImpulseOnHit",
	"EndOnHit", "CancelGravity", "WallCancel", "AllowMove", "AllowRecoverMove",
	"AllowJumpDuringRecover", "AllowLeaveGround", "AllowHitOnZeroDamage", "AccelMult",
	"BackwardAccelMult", "TurnOffDampening", "KeepGroundFriction", "IgnoreGroundRestrict",
	"DoNotBounceOffNoSlideCeiling", "NoSlideCeilingBuffer", "CastAnim", "Hurtbox", "CastTime",
	"FixedRecoverTime", "RecoverTime", "AntigravTime", "GCancelTime", "IgnoreForcedFallTime",
	"ShowCloudTime", "CooldownTime", "IgnoreCDOverride", "OnHitCooldownTime", "ShakeTime",
	"DisableShake", "OnlyShakeOnce", "ShakeAllCams", "FixedMinChargeTime", "MinCancelTime",
	"LoseInvulnTime", "BaseDamage", "VariableImpulse", "FixedImpulse", "MinimumImpulse",
	"PostHitDamageMultiplier", "PostHitImpulseMultiplier", "ImpulseOffsetX", "ImpulseOffsetY",
	"ImpulseOffsetMaxX", "ImpulseToPoint", "ToPointChangeX", "ToPointChangeY", "ToPointChangeDmg",
	"LockTo45Degrees", "DownwardForceMult", "MirrorImpulseOffset", "MirrorOffsetCenter",
	"IgnoreStrength", "AcceptInput", "HeldDirOffsets", "DIMaxAngle", "ImpulseOnHeavy",
	"ItemSpeedDamage", "ItemSpeedImpulse", "ItemHitElasticity", "AirTimeMultOnly", "IsMultihit",
	"MinTimeBetweenHits", "InheritAlreadyHit", "InterruptThreshold", "CanDamageEveryone",
	"CanAssist", "ConsumesWeapon", "FixedStunTime", "HoldHitEnts", "HoldOffsetX", "HoldOffsetY",
	"UpdateHeldEnts", "DestroysItemOnHit", "GrabInterpolateTime", "GrabAnim", "GrabAnimSpeed",
	"GrabForceUpdate", "Uninterruptable", "CanChangeDirection", "ComboName", "ComboOverrideIfHit",
	"ComboOverrideIfRelease", "ComboOverrideIfWall", "ComboOverrideIfButton",
	"OriginOverrideIfInMode", "ComboOverrideIfDir", "ComboOverrideIfInterrupt",
	"IgnoreButtonOnHit", "IgnoreButtonOnMiss", "ComboUseSameTargetPos", "UseCollisionAsTargetPos",
	"ComboUseTargetAsSource", "ComboUseSameSourcePos", "BGPowerOnFire", "BGCastIdx",
	"AllowBGInterrupt", "PopulateActivePowerHits", "PopulateBGHits", "ExhaustedVersion",
	"GCVersion", "MomentumVersion", "TeamTauntPower", "AnimLayer", "FXLayer", "IsWorldCastGfx",
	"CustomArtCastGfx", "DelayCastGfxToFirstFire", "DelayCastGFXCleanUp", "CastAnimSource",
	"DoNotSendSync", "IsThrow", "CannotAttackAroundCorners", "ForceHitThroughSoftPlat",
	"ForceFaceRight", "CollisionPowerOffSetX", "CollisionPowerOffSetY", "CastGfx.AnimFile",
	"CastGfx.AnimClass", "CastGfx.AnimScale", "CastGfx.FireAndForget", "CastGfx.MoveAnimSpeed",
	"CastGfx.FlipAnim", "CastGfx.Tint", "CastGfxRotation", "IsWorldFireGfx", "IsAttackFireGfx",
	"CustomArtFireGfx", "FireAnimSource", "FireGfx.AnimFile", "FireGfx.AnimClass",
	"FireGfx.AnimScale", "FireGfx.FireAndForget", "FireGfx.MoveAnimSpeed", "FireGfx.FlipAnim",
	"FireGfx.Tint", "FireGfxRotation", "IsWorldHitGfx", "OnlyOnceHitGfx", "OwnerFacingHitGfx",
	"PlayHitGfxBehind", "HitAnimSource", "HitReactAnim", "HitGfx.AnimFile", "HitGfx.AnimClass",
	"HitGfx.AnimScale", "HitGfx.FireAndForget", "HitGfx.Tint",
}
